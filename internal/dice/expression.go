package dice

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var expressionPattern = regexp.MustCompile(`^\d+d\d+( \d+d\d+)*$`)

// Token is a single `<count>d<sides>` segment of an expression.
type Token struct {
	Count int
	Sides int
}

func (t Token) String() string {
	return strconv.Itoa(t.Count) + "d" + strconv.Itoa(t.Sides)
}

// Validate trims and lower-cases raw and checks it against the dice grammar.
// The returned expression keeps the caller's token order and spacing.
func Validate(raw string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !expressionPattern.MatchString(normalized) {
		return "", fmt.Errorf("%w: %q", ErrInvalidExpression, raw)
	}
	return normalized, nil
}

// ParseExpression validates raw and splits it into tokens.
func ParseExpression(raw string) ([]Token, string, error) {
	expression, err := Validate(raw)
	if err != nil {
		return nil, "", err
	}

	segments := strings.Split(expression, " ")
	tokens := make([]Token, 0, len(segments))
	for _, segment := range segments {
		token, err := parseToken(segment)
		if err != nil {
			return nil, "", err
		}
		tokens = append(tokens, token)
	}
	return tokens, expression, nil
}

// parseToken expects a segment already matched by expressionPattern.
func parseToken(segment string) (Token, error) {
	countPart, sidesPart, ok := strings.Cut(segment, "d")
	if !ok {
		return Token{}, fmt.Errorf("%w: %q", ErrInvalidExpression, segment)
	}

	// Counts beyond MaxMessageLength can never render, so the exact value only
	// matters up to that bound.
	count, err := strconv.Atoi(countPart)
	if err != nil {
		count = math.MaxInt
	}
	sides, err := strconv.ParseInt(sidesPart, 10, 32)
	if err != nil {
		return Token{}, fmt.Errorf("%w: sides out of range in %q", ErrInvalidExpression, segment)
	}
	if count < 1 || sides < 1 {
		return Token{}, fmt.Errorf("%w: %q needs a positive count and sides", ErrInvalidExpression, segment)
	}

	return Token{Count: count, Sides: int(sides)}, nil
}
