// Package dice parses `<count>d<sides>` expressions, rolls them and renders
// the bakery's roll report.
//
// # Sessions
//
// A Session is built once by Roll and never changes afterwards. Its total is
// recomputed from the outcomes on every call to Total.
//
// # Rerolls
//
// A reroll needs the previous expression and roll number. Both are carried in
// an opaque State token (see EncodeState) and, as a fallback, echoed in the
// rendered report so ParseReport can recover them from message text.
package dice

import (
	"fmt"
	"math/rand/v2"
)

// Rand is the random source used to roll a die.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Option configures Roll.
type Option func(*rollOptions)

type rollOptions struct {
	rng Rand
}

// WithRand rolls with r instead of the process-wide generator.
func WithRand(r Rand) Option {
	return func(o *rollOptions) { o.rng = r }
}

// Outcome is the value shown by a single die.
type Outcome struct {
	Sides int
	Value int
}

// TokenResult holds the outcomes of one token in generation order.
type TokenResult struct {
	Token    Token
	Outcomes []Outcome
}

// Subtotal sums the token's outcomes.
func (r TokenResult) Subtotal() int {
	sum := 0
	for _, o := range r.Outcomes {
		sum += o.Value
	}
	return sum
}

// Session is one player's roll of an expression.
type Session struct {
	expression string
	sequence   int
	results    []TokenResult
}

// Roll validates expression and rolls every die in it. sequence is the roll
// number shown in the report and starts at 1 for a fresh roll.
func Roll(expression string, sequence int, opts ...Option) (*Session, error) {
	if sequence < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSequence, sequence)
	}

	tokens, normalized, err := ParseExpression(expression)
	if err != nil {
		return nil, err
	}
	if err := checkDiceBound(tokens); err != nil {
		return nil, err
	}

	o := rollOptions{rng: globalRand{}}
	for _, opt := range opts {
		opt(&o)
	}

	results := make([]TokenResult, 0, len(tokens))
	for _, token := range tokens {
		outcomes := make([]Outcome, token.Count)
		for i := range outcomes {
			outcomes[i] = Outcome{Sides: token.Sides, Value: rollDie(o.rng, token.Sides)}
		}
		results = append(results, TokenResult{Token: token, Outcomes: outcomes})
	}

	return &Session{
		expression: normalized,
		sequence:   sequence,
		results:    results,
	}, nil
}

// Expression returns the normalized expression that was rolled.
func (s *Session) Expression() string { return s.expression }

// Sequence returns the roll number, 1 for a fresh roll.
func (s *Session) Sequence() int { return s.sequence }

// Results returns a copy of the per-token results.
func (s *Session) Results() []TokenResult {
	out := make([]TokenResult, len(s.results))
	for i, r := range s.results {
		out[i] = TokenResult{
			Token:    r.Token,
			Outcomes: append([]Outcome(nil), r.Outcomes...),
		}
	}
	return out
}

// Total sums every subtotal.
func (s *Session) Total() int {
	total := 0
	for _, r := range s.results {
		total += r.Subtotal()
	}
	return total
}

// State returns what a reroll of this session needs.
func (s *Session) State() State {
	return State{Expression: s.expression, Sequence: s.sequence}
}

// checkDiceBound rejects expressions with more dice than a report could show;
// every die renders as at least one character.
func checkDiceBound(tokens []Token) error {
	dice := 0
	for _, t := range tokens {
		if t.Count > MaxMessageLength-dice {
			return fmt.Errorf("%w: more than %d dice requested", ErrMessageTooLarge, MaxMessageLength)
		}
		dice += t.Count
	}
	return nil
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(rng Rand, sides int) int {
	return rng.IntN(sides) + 1
}
