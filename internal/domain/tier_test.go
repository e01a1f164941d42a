package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTier(t *testing.T) {
	bands := DefaultTierBands()

	tests := []struct {
		name     string
		score    float64
		expected Tier
	}{
		{"zero", 0.0, TierD},
		{"low", 0.1, TierD},
		{"D upper bound excluded", 0.2499, TierD},
		{"C lower bound", 0.25, TierC},
		{"C mid", 0.3, TierC},
		{"B lower bound", 0.40, TierB},
		{"B mid", 0.45, TierB},
		{"A lower bound", 0.55, TierA},
		{"A mid", 0.6, TierA},
		{"S lower bound", 0.70, TierS},
		{"S mid", 0.76, TierS},
		{"exact upper bound absorbed by S", 1.0, TierS},
		{"above range still S", 1.3, TierS},
		{"negative falls back to D", -0.1, TierD},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyTier(tc.score, bands))
		})
	}

	t.Run("exhaustive and non-overlapping over [0,1]", func(t *testing.T) {
		for i := 0; i <= 1000; i++ {
			s := float64(i) / 1000
			matches := 0
			for _, b := range bands {
				if s >= b.Min && s < b.Max {
					matches++
				}
			}
			if s >= 1.0 {
				// Only the closed upper bound sits outside every interval.
				assert.Equal(t, 0, matches)
				assert.Equal(t, TierS, ClassifyTier(s, bands))
				continue
			}
			assert.Equal(t, 1, matches, "score %f", s)
		}
	})

	t.Run("empty bands", func(t *testing.T) {
		assert.Equal(t, Tier(""), ClassifyTier(0.5, nil))
	})
}

func TestOutOfRange(t *testing.T) {
	assert.False(t, OutOfRange(0))
	assert.False(t, OutOfRange(0.5))
	assert.False(t, OutOfRange(1))
	assert.True(t, OutOfRange(-0.01))
	assert.True(t, OutOfRange(1.01))
	assert.True(t, OutOfRange(math.NaN()))
}

func TestAddTiers(t *testing.T) {
	bands := DefaultTierBands()
	rows := []CountySwing{
		{CountyName: "A", SwingScore: 0.76},
		{CountyName: "B", SwingScore: 0.45},
		{CountyName: "C", SwingScore: 0.05},
	}

	tiered := AddTiers(rows, bands)
	require.Len(t, tiered, 3)
	assert.Equal(t, TierS, tiered[0].Tier)
	assert.Equal(t, TierB, tiered[1].Tier)
	assert.Equal(t, TierD, tiered[2].Tier)

	// Input rows stay untouched.
	assert.Equal(t, Tier(""), rows[0].Tier)
}

func TestSummarizeTiers(t *testing.T) {
	bands := DefaultTierBands()

	t.Run("fixed display order with absent tiers omitted", func(t *testing.T) {
		rows := AddTiers([]CountySwing{
			{SwingScore: 0.80}, // S
			{SwingScore: 0.30}, // C
			{SwingScore: 0.28}, // C
			{SwingScore: 0.10}, // D
		}, bands)

		summary := SummarizeTiers(rows, bands)
		require.Len(t, summary, 3)

		assert.Equal(t, TierS, summary[0].Tier)
		assert.Equal(t, 1, summary[0].Count)
		assert.InDelta(t, 25.0, summary[0].Percentage, 1e-9)
		assert.NotEmpty(t, summary[0].Description)
		assert.NotEmpty(t, summary[0].Icon)

		assert.Equal(t, TierC, summary[1].Tier)
		assert.Equal(t, 2, summary[1].Count)
		assert.InDelta(t, 50.0, summary[1].Percentage, 1e-9)

		assert.Equal(t, TierD, summary[2].Tier)
	})

	t.Run("percentage uses the whole table", func(t *testing.T) {
		rows := AddTiers([]CountySwing{
			{SwingScore: 0.80},
			{SwingScore: 0.80},
			{SwingScore: 0.10},
		}, bands)

		summary := SummarizeTiers(rows, bands)
		require.Len(t, summary, 2)
		assert.InDelta(t, 66.7, summary[0].Percentage, 1e-9)
		assert.InDelta(t, 33.3, summary[1].Percentage, 1e-9)
	})

	t.Run("empty table", func(t *testing.T) {
		assert.Nil(t, SummarizeTiers(nil, bands))
	})
}

func TestDefaultTierBands_Contiguous(t *testing.T) {
	bands := DefaultTierBands()
	require.Len(t, bands, 5)
	assert.Equal(t, 1.0, bands[0].Max)
	assert.Equal(t, 0.0, bands[len(bands)-1].Min)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, bands[i].Max, bands[i-1].Min, "band %d must abut band %d", i, i-1)
	}
}
