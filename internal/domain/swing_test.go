package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countyYear(state, fips, name string, year int, dem, rep, other int64) CountyYear {
	cy := CountyYear{
		StateCode:  state,
		CountyFIPS: fips,
		CountyName: name,
		Year:       year,
		DemVotes:   dem,
		RepVotes:   rep,
		OtherVotes: other,
	}
	cy.TotalVotes = dem + rep + other
	cy.Margin = dem - rep
	if cy.TotalVotes != 0 {
		cy.MarginPct = float64(cy.Margin) / float64(cy.TotalVotes)
	}
	return cy
}

func TestScore(t *testing.T) {
	weights := DefaultWeights()

	t.Run("two counties across two years", func(t *testing.T) {
		// X: margin swings 0.2 -> -0.1, 1000 votes latest.
		// Y: margin swings 0.0 -> 0.05, 500 votes latest.
		table := []CountyYear{
			countyYear("PA", "42001", "X", 2016, 600, 400, 0),  // margin_pct 0.2
			countyYear("PA", "42001", "X", 2020, 450, 550, 0),  // margin_pct -0.1
			countyYear("PA", "42003", "Y", 2016, 500, 500, 0),  // margin_pct 0.0
			countyYear("PA", "42003", "Y", 2020, 262, 237, 1),  // margin_pct 0.05
		}

		result, err := Score(table, 2016, 2020, weights)
		require.NoError(t, err)
		require.Len(t, result, 2)

		// X has the larger swing and more votes, so it ranks first.
		x, y := result[0], result[1]
		assert.Equal(t, "X", x.CountyName)
		assert.Equal(t, "Y", y.CountyName)
		assert.Equal(t, 2016, x.YearPrev)
		assert.Equal(t, 2020, x.YearLatest)

		assert.InDelta(t, 0.3, x.MarginChangeAbs, 1e-9)
		assert.InDelta(t, 0.9, x.ClosenessLatest, 1e-9)
		assert.InDelta(t, 1000, x.TurnoutLatest, 1e-9)
		assert.InDelta(t, 1000, x.VotesLatest, 1e-9)
		assert.InDelta(t, 0.05, y.MarginChangeAbs, 1e-9)
		assert.InDelta(t, 0.95, y.ClosenessLatest, 1e-9)

		// With two counties each normalized column is {0,1}.
		assert.InDelta(t, 1.0, x.MarginChangeScore, 1e-9)
		assert.InDelta(t, 0.0, x.ClosenessScore, 1e-9)
		assert.InDelta(t, 1.0, x.TurnoutScore, 1e-9)
		assert.InDelta(t, 1.0, x.VotesScore, 1e-9)

		assert.InDelta(t, 0.75, x.SwingScore, 1e-9)
		assert.InDelta(t, 0.25, y.SwingScore, 1e-9)
	})

	t.Run("county in only one year is excluded", func(t *testing.T) {
		table := []CountyYear{
			countyYear("GA", "13121", "Fulton", 2016, 100, 90, 0),
			countyYear("GA", "13121", "Fulton", 2020, 120, 80, 0),
			countyYear("GA", "13067", "Cobb", 2016, 50, 60, 0),   // missing in 2020
			countyYear("GA", "13089", "DeKalb", 2020, 70, 30, 0), // missing in 2016
		}

		result, err := Score(table, 2016, 2020, DefaultWeights())
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Fulton", result[0].CountyName)
	})

	t.Run("single surviving county gets neutral components", func(t *testing.T) {
		table := []CountyYear{
			countyYear("NV", "32003", "Clark", 2016, 500, 400, 100),
			countyYear("NV", "32003", "Clark", 2020, 480, 420, 100),
		}

		result, err := Score(table, 2016, 2020, DefaultWeights())
		require.NoError(t, err)
		require.Len(t, result, 1)

		got := result[0]
		assert.Equal(t, 0.5, got.MarginChangeScore)
		assert.Equal(t, 0.5, got.ClosenessScore)
		assert.Equal(t, 0.5, got.TurnoutScore)
		assert.Equal(t, 0.5, got.VotesScore)
		assert.InDelta(t, 0.5, got.SwingScore, 1e-9)
	})

	t.Run("weights applied without renormalization", func(t *testing.T) {
		table := []CountyYear{
			countyYear("AZ", "04013", "Maricopa", 2016, 500, 400, 0),
			countyYear("AZ", "04013", "Maricopa", 2020, 400, 500, 0),
		}

		// Mis-weighted on purpose: sum is 4.0, so the 0.5-neutral county
		// scores 2.0 and leaves [0,1].
		heavy := Weights{MarginChange: 1, Closeness: 1, Turnout: 1, Votes: 1}
		result, err := Score(table, 2016, 2020, heavy)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.InDelta(t, 2.0, result[0].SwingScore, 1e-9)
		assert.True(t, OutOfRange(result[0].SwingScore))
	})

	t.Run("sorted by swing score descending", func(t *testing.T) {
		table := []CountyYear{
			countyYear("WI", "55009", "Brown", 2016, 500, 500, 0),
			countyYear("WI", "55009", "Brown", 2020, 505, 495, 0),
			countyYear("WI", "55025", "Dane", 2016, 900, 100, 0),
			countyYear("WI", "55025", "Dane", 2020, 100, 900, 0),
			countyYear("WI", "55079", "Milwaukee", 2016, 600, 400, 0),
			countyYear("WI", "55079", "Milwaukee", 2020, 590, 410, 0),
		}

		result, err := Score(table, 2016, 2020, DefaultWeights())
		require.NoError(t, err)
		require.Len(t, result, 3)
		for i := 1; i < len(result); i++ {
			assert.GreaterOrEqual(t, result[i-1].SwingScore, result[i].SwingScore)
		}
	})
}

func TestScore_InsufficientYearData(t *testing.T) {
	table := []CountyYear{
		countyYear("PA", "42001", "Adams", 2016, 100, 90, 0),
		countyYear("PA", "42001", "Adams", 2020, 110, 80, 0),
	}

	t.Run("missing previous year", func(t *testing.T) {
		_, err := Score(table, 2012, 2020, DefaultWeights())
		require.Error(t, err)

		var yearErr *InsufficientYearDataError
		require.ErrorAs(t, err, &yearErr)
		assert.Equal(t, 2012, yearErr.Year)
		assert.Equal(t, []int{2016, 2020}, yearErr.Available)
		assert.Contains(t, err.Error(), "2012")
	})

	t.Run("missing latest year", func(t *testing.T) {
		_, err := Score(table, 2016, 2024, DefaultWeights())

		var yearErr *InsufficientYearDataError
		require.ErrorAs(t, err, &yearErr)
		assert.Equal(t, 2024, yearErr.Year)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := Score(nil, 2016, 2020, DefaultWeights())

		var yearErr *InsufficientYearDataError
		require.ErrorAs(t, err, &yearErr)
		assert.Empty(t, yearErr.Available)
		assert.Contains(t, err.Error(), "empty")
	})
}
