package domain

import (
	"math"
	"sort"
)

// countyKey identifies a county across years for the two-year join.
type countyKey struct {
	stateCode  string
	countyFIPS string
	countyName string
}

// Score links each county's aggregated results across two election years and
// produces one CountySwing per county present in both, sorted by swing score
// descending (stable, so ties keep join order).
//
// Counties with data in only one of the two years are silently excluded:
// inner-join semantics, not an error. A missing year entirely is a usage
// error and returns *InsufficientYearDataError.
//
// The four raw components are min-max normalized over the surviving county
// set and combined as a weighted sum. Weights are applied exactly as given;
// if they do not sum to 1.0 the score can leave [0,1].
func Score(table []CountyYear, yearPrev, yearLatest int, weights Weights) ([]CountySwing, error) {
	prev := filterYear(table, yearPrev)
	latest := filterYear(table, yearLatest)

	if len(prev) == 0 {
		return nil, &InsufficientYearDataError{Year: yearPrev, Available: distinctYears(table)}
	}
	if len(latest) == 0 {
		return nil, &InsufficientYearDataError{Year: yearLatest, Available: distinctYears(table)}
	}

	latestByKey := make(map[countyKey]CountyYear, len(latest))
	for _, cy := range latest {
		latestByKey[keyOf(cy)] = cy
	}

	// Inner join, in prev-slice order. The aggregate table is sorted by
	// (state, county, year), so join order is deterministic.
	result := make([]CountySwing, 0, len(prev))
	for _, p := range prev {
		l, ok := latestByKey[keyOf(p)]
		if !ok {
			continue
		}
		result = append(result, CountySwing{
			StateCode:  p.StateCode,
			CountyFIPS: p.CountyFIPS,
			CountyName: p.CountyName,
			YearPrev:   yearPrev,
			YearLatest: yearLatest,

			MarginChangeAbs: math.Abs(l.MarginPct - p.MarginPct),
			ClosenessLatest: 1 - math.Abs(l.MarginPct),
			TurnoutLatest:   float64(l.TotalVotes),
			VotesLatest:     float64(l.TotalVotes),
		})
	}

	normalizeComponents(result)

	for i := range result {
		result[i].SwingScore = weights.MarginChange*result[i].MarginChangeScore +
			weights.Closeness*result[i].ClosenessScore +
			weights.Turnout*result[i].TurnoutScore +
			weights.Votes*result[i].VotesScore
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SwingScore > result[j].SwingScore
	})

	return result, nil
}

// normalizeComponents min-max scales each raw component column in place.
func normalizeComponents(rows []CountySwing) {
	n := len(rows)
	marginChange := make([]float64, n)
	closeness := make([]float64, n)
	turnout := make([]float64, n)
	votes := make([]float64, n)
	for i, r := range rows {
		marginChange[i] = r.MarginChangeAbs
		closeness[i] = r.ClosenessLatest
		turnout[i] = r.TurnoutLatest
		votes[i] = r.VotesLatest
	}

	marginChange = NormalizeMinMax(marginChange)
	closeness = NormalizeMinMax(closeness)
	turnout = NormalizeMinMax(turnout)
	votes = NormalizeMinMax(votes)

	for i := range rows {
		rows[i].MarginChangeScore = marginChange[i]
		rows[i].ClosenessScore = closeness[i]
		rows[i].TurnoutScore = turnout[i]
		rows[i].VotesScore = votes[i]
	}
}

func filterYear(table []CountyYear, year int) []CountyYear {
	var out []CountyYear
	for _, cy := range table {
		if cy.Year == year {
			out = append(out, cy)
		}
	}
	return out
}

func keyOf(cy CountyYear) countyKey {
	return countyKey{stateCode: cy.StateCode, countyFIPS: cy.CountyFIPS, countyName: cy.CountyName}
}

func distinctYears(table []CountyYear) []int {
	seen := make(map[int]bool)
	var years []int
	for _, cy := range table {
		if !seen[cy.Year] {
			seen[cy.Year] = true
			years = append(years, cy.Year)
		}
	}
	sort.Ints(years)
	return years
}
