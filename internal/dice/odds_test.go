package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOdds(t *testing.T) {
	tcs := []struct {
		expression string
		min        int
		max        int
		mean       string
	}{
		{expression: "1d20", min: 1, max: 20, mean: "10.5"},
		{expression: "1d8 2d4", min: 3, max: 16, mean: "9.5"},
		{expression: "3d6", min: 3, max: 18, mean: "10.5"},
		{expression: "20d1", min: 20, max: 20, mean: "20"},
	}

	for _, tc := range tcs {
		t.Run(tc.expression, func(t *testing.T) {
			stats, err := Odds(tc.expression)
			require.NoError(t, err)
			assert.Equal(t, tc.min, stats.Min)
			assert.Equal(t, tc.max, stats.Max)
			assert.Equal(t, tc.mean, stats.Mean.String())
		})
	}
}

func TestOddsRejectsInvalidExpression(t *testing.T) {
	_, err := Odds("1d20a")
	assert.ErrorIs(t, err, ErrInvalidExpression)

	_, err = Odds("5000d6")
	assert.ErrorIs(t, err, ErrMessageTooLarge)
}
