package dice

import "github.com/shopspring/decimal"

// Stats describes the possible totals of an expression.
type Stats struct {
	Min  int
	Max  int
	Mean decimal.Decimal
}

// Odds computes the minimum, maximum and expected total of an expression
// without rolling it.
func Odds(expression string) (Stats, error) {
	tokens, _, err := ParseExpression(expression)
	if err != nil {
		return Stats{}, err
	}
	if err := checkDiceBound(tokens); err != nil {
		return Stats{}, err
	}

	var stats Stats
	mean := decimal.Zero
	half := decimal.NewFromInt(2)
	for _, t := range tokens {
		stats.Min += t.Count
		stats.Max += t.Count * t.Sides
		// A fair die with n sides averages (n+1)/2.
		perDie := decimal.NewFromInt(int64(t.Sides) + 1).Div(half)
		mean = mean.Add(perDie.Mul(decimal.NewFromInt(int64(t.Count))))
	}
	stats.Mean = mean
	return stats, nil
}
