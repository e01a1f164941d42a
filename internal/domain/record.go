package domain

// Row is a single raw vote record keyed by source column name, exactly as it
// came out of the CSV header. Interpretation of the columns is deferred to
// Aggregate via a ColumnMapping.
type Row map[string]string

// ColumnMapping names the raw columns that carry each required field.
// Defaults follow the MIT Election Lab county returns layout.
type ColumnMapping struct {
	State      string `koanf:"state" json:"state" validate:"required"`
	CountyName string `koanf:"county_name" json:"county_name" validate:"required"`
	CountyFIPS string `koanf:"county_fips" json:"county_fips" validate:"required"`
	Year       string `koanf:"year" json:"year" validate:"required"`
	Party      string `koanf:"party" json:"party" validate:"required"`
	Votes      string `koanf:"votes" json:"votes" validate:"required"`
}

// DefaultColumnMapping returns the MIT Election Lab column names.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		State:      "state_po",
		CountyName: "county_name",
		CountyFIPS: "county_fips",
		Year:       "year",
		Party:      "party_simplified",
		Votes:      "votes",
	}
}

// CountyYear is one county's aggregated result for a single election year.
// Invariants: TotalVotes = DemVotes + RepVotes + OtherVotes;
// Margin = DemVotes - RepVotes; MarginPct = Margin/TotalVotes (0 when
// TotalVotes is 0).
type CountyYear struct {
	StateCode  string  `json:"state_code"`
	CountyFIPS string  `json:"county_fips"`
	CountyName string  `json:"county_name"`
	Year       int     `json:"year"`
	DemVotes   int64   `json:"dem_votes"`
	RepVotes   int64   `json:"rep_votes"`
	OtherVotes int64   `json:"other_votes"`
	TotalVotes int64   `json:"total_votes"`
	Margin     int64   `json:"margin"`
	MarginPct  float64 `json:"margin_pct"`
}

// Weights controls how the four normalized swing components combine into the
// final score. The scorer applies them as-is and does not renormalize, so
// callers must supply weights summing to 1.0 for scores to land in [0,1];
// config loading enforces that, direct library use does not.
type Weights struct {
	MarginChange float64 `koanf:"margin_change" json:"margin_change"`
	Closeness    float64 `koanf:"closeness" json:"closeness"`
	Turnout      float64 `koanf:"turnout" json:"turnout"`
	Votes        float64 `koanf:"votes" json:"votes"`
}

// DefaultWeights weights the four components equally.
func DefaultWeights() Weights {
	return Weights{MarginChange: 0.25, Closeness: 0.25, Turnout: 0.25, Votes: 0.25}
}

// Sum returns the total of the four weights.
func (w Weights) Sum() float64 {
	return w.MarginChange + w.Closeness + w.Turnout + w.Votes
}

// CountySwing is one scored county, present in both compared years.
// This struct is the interchange schema: the JSON store, the Kafka sink, and
// the HTTP API all serialize it with these field names.
type CountySwing struct {
	StateCode  string `json:"state_code"`
	CountyFIPS string `json:"county_fips"`
	CountyName string `json:"county_name"`
	YearPrev   int    `json:"year_prev"`
	YearLatest int    `json:"year_latest"`

	// Raw components.
	MarginChangeAbs float64 `json:"margin_change_abs"`
	ClosenessLatest float64 `json:"closeness_latest"`
	TurnoutLatest   float64 `json:"turnout_latest"`
	VotesLatest     float64 `json:"votes_latest"`

	// Min-max normalized components, each in [0,1].
	MarginChangeScore float64 `json:"margin_change_score"`
	ClosenessScore    float64 `json:"closeness_score"`
	TurnoutScore      float64 `json:"turnout_score"`
	VotesScore        float64 `json:"votes_score"`

	SwingScore float64 `json:"swing_score"`

	// Tier is filled by AddTiers; empty until classified.
	Tier Tier `json:"tier,omitempty"`
}
