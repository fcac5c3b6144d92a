package dice

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is the longest report a chat message can carry.
const MaxMessageLength = 2000

const (
	reportTitle    = "# Here are your roll results!"
	sequencePrefix = "## Roll #"
	echoPrefix     = "> "
	tokenPrefix    = "- "
	totalPrefix    = "## Total: "
)

// Render formats the session as a roll report. It fails with
// ErrMessageTooLarge rather than truncating.
func (s *Session) Render() (string, error) {
	var b strings.Builder
	b.WriteString(reportTitle)
	b.WriteString("\n")
	b.WriteString(sequencePrefix)
	b.WriteString(strconv.Itoa(s.sequence))
	b.WriteString("\n")
	b.WriteString(echoPrefix)
	b.WriteString(s.expression)
	b.WriteString("\n")

	for _, r := range s.results {
		b.WriteString(tokenPrefix)
		b.WriteString(r.Token.String())
		b.WriteString(": ")
		if len(r.Outcomes) == 1 {
			b.WriteString(strconv.Itoa(r.Outcomes[0].Value))
		} else {
			for i, o := range r.Outcomes {
				if i > 0 {
					b.WriteString(" + ")
				}
				b.WriteString(strconv.Itoa(o.Value))
			}
			b.WriteString(" = ")
			b.WriteString(strconv.Itoa(r.Subtotal()))
		}
		b.WriteString("\n")
	}

	b.WriteString(totalPrefix)
	b.WriteString(strconv.Itoa(s.Total()))

	report := b.String()
	if n := utf8.RuneCountInString(report); n > MaxMessageLength {
		return "", fmt.Errorf("%w: %d characters, limit %d", ErrMessageTooLarge, n, MaxMessageLength)
	}
	return report, nil
}

// ParseReport recovers the expression and roll number from a rendered report.
// A report without a roll line counts as roll 0. The expression comes from the
// echo line, or from the token lines of reports that predate it.
func ParseReport(report string) (State, error) {
	var (
		sequence int
		echo     string
		labels   []string
		seenSeq  bool
		seenEcho bool
	)

	for _, line := range strings.Split(report, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case !seenSeq && strings.HasPrefix(line, sequencePrefix):
			seenSeq = true
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, sequencePrefix)))
			if err != nil || n < 0 {
				return State{}, fmt.Errorf("%w: bad roll line %q", ErrInvalidExpression, line)
			}
			sequence = n
		case !seenEcho && strings.HasPrefix(line, echoPrefix):
			seenEcho = true
			echo = strings.TrimPrefix(line, echoPrefix)
		case strings.HasPrefix(line, tokenPrefix):
			label, _, ok := strings.Cut(strings.TrimPrefix(line, tokenPrefix), ":")
			if ok {
				labels = append(labels, strings.TrimSpace(label))
			}
		}
	}

	expression := echo
	if !seenEcho {
		if len(labels) == 0 {
			return State{}, fmt.Errorf("%w: no dice found in report", ErrInvalidExpression)
		}
		expression = strings.Join(labels, " ")
	}

	normalized, err := Validate(expression)
	if err != nil {
		return State{}, err
	}
	return State{Expression: normalized, Sequence: sequence}, nil
}

// Reroll rolls the expression found in a previous report again with the next
// roll number.
func Reroll(report string, opts ...Option) (*Session, error) {
	state, err := ParseReport(report)
	if err != nil {
		return nil, err
	}
	return Roll(state.Expression, state.Sequence+1, opts...)
}
