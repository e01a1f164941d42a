package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Party is a standardized party category.
type Party string

const (
	PartyDem   Party = "DEM"
	PartyRep   Party = "REP"
	PartyOther Party = "OTHER"
)

// partyRule pairs a category with its synonym list. Rules are evaluated in
// slice order, so precedence is fixed by construction.
type partyRule struct {
	party    Party
	synonyms []string
}

// PartyMatcher standardizes free-text party labels to DEM, REP, or OTHER
// using case-insensitive substring matching against synonym lists, with fixed
// precedence DEM > REP. Anything unmatched, including empty labels, is OTHER.
type PartyMatcher struct {
	rules []partyRule
}

// NewPartyMatcher builds a matcher from configured synonym lists. Synonyms
// are matched bidirectionally: a label matches a rule if the label contains
// one of its synonyms or a synonym contains the label, so both "DEMOCRAT" and
// "DEM" match the DEM rule regardless of which form the config lists.
func NewPartyMatcher(dem, rep []string) *PartyMatcher {
	upper := func(in []string) []string {
		out := make([]string, 0, len(in))
		for _, s := range in {
			s = strings.ToUpper(strings.TrimSpace(s))
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return &PartyMatcher{rules: []partyRule{
		{party: PartyDem, synonyms: upper(dem)},
		{party: PartyRep, synonyms: upper(rep)},
	}}
}

// DefaultPartyMatcher covers the label variants seen in MIT Election Lab and
// state-published returns.
func DefaultPartyMatcher() *PartyMatcher {
	return NewPartyMatcher(
		[]string{"DEMOCRAT", "DEM", "DEMOCRATIC"},
		[]string{"REPUBLICAN", "REP"},
	)
}

// Match returns the standardized category for a raw party label.
func (m *PartyMatcher) Match(label string) Party {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return PartyOther
	}
	for _, rule := range m.rules {
		for _, syn := range rule.synonyms {
			if strings.Contains(label, syn) || strings.Contains(syn, label) {
				return rule.party
			}
		}
	}
	return PartyOther
}

// countyYearKey identifies one (state, county, year) group during aggregation.
type countyYearKey struct {
	stateCode  string
	countyFIPS string
	countyName string
	year       int
}

// Aggregate converts raw vote rows into one CountyYear per (state, county,
// year), summing votes by standardized party and deriving margin metrics.
//
// Data-quality defaults never abort the batch: unparseable vote counts count
// as 0, unmapped party labels count as OTHER, and unparseable FIPS values
// become "". A *SchemaError is returned only when a required column is absent
// from every row, which means the column mapping does not fit the data.
//
// The output is sorted by (state, county name, year) for deterministic
// downstream iteration.
func Aggregate(rows []Row, cols ColumnMapping, parties *PartyMatcher) ([]CountyYear, error) {
	if err := checkSchema(rows, cols); err != nil {
		return nil, err
	}

	groups := make(map[countyYearKey]*CountyYear)
	order := make([]countyYearKey, 0, len(rows))

	for _, row := range rows {
		key := countyYearKey{
			stateCode:  strings.ToUpper(strings.TrimSpace(row[cols.State])),
			countyFIPS: NormalizeFIPS(row[cols.CountyFIPS]),
			countyName: strings.TrimSpace(row[cols.CountyName]),
			year:       parseIntOrZero(row[cols.Year]),
		}

		agg, ok := groups[key]
		if !ok {
			agg = &CountyYear{
				StateCode:  key.stateCode,
				CountyFIPS: key.countyFIPS,
				CountyName: key.countyName,
				Year:       key.year,
			}
			groups[key] = agg
			order = append(order, key)
		}

		votes := parseVotesOrZero(row[cols.Votes])
		switch parties.Match(row[cols.Party]) {
		case PartyDem:
			agg.DemVotes += votes
		case PartyRep:
			agg.RepVotes += votes
		default:
			agg.OtherVotes += votes
		}
	}

	result := make([]CountyYear, 0, len(order))
	for _, key := range order {
		agg := groups[key]
		agg.TotalVotes = agg.DemVotes + agg.RepVotes + agg.OtherVotes
		agg.Margin = agg.DemVotes - agg.RepVotes
		if agg.TotalVotes != 0 {
			agg.MarginPct = float64(agg.Margin) / float64(agg.TotalVotes)
		}
		result = append(result, *agg)
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.StateCode != b.StateCode {
			return a.StateCode < b.StateCode
		}
		if a.CountyName != b.CountyName {
			return a.CountyName < b.CountyName
		}
		return a.Year < b.Year
	})

	return result, nil
}

// checkSchema verifies every required column appears in at least one row.
func checkSchema(rows []Row, cols ColumnMapping) error {
	required := []string{cols.State, cols.CountyName, cols.CountyFIPS, cols.Year, cols.Party, cols.Votes}

	present := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			present[col] = true
		}
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	observed := make([]string, 0, len(present))
	for col := range present {
		observed = append(observed, col)
	}
	sort.Strings(observed)
	return &SchemaError{Missing: missing, Present: observed}
}

// parseVotesOrZero coerces a raw vote count to int64, returning 0 for
// missing or non-numeric values. Float-string counts ("1523.0") truncate.
func parseVotesOrZero(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(f)
	}
	return 0
}

// parseIntOrZero parses a string as int, returning 0 on failure.
func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
