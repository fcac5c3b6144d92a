package dice

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const stateVersion = "1"

// State is the part of a session a reroll needs.
type State struct {
	Expression string
	Sequence   int
}

// EncodeState packs s into an opaque token safe for button IDs and callback data.
func EncodeState(s State) string {
	payload := stateVersion + "|" + strconv.Itoa(s.Sequence) + "|" + s.Expression
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// DecodeState reverses EncodeState and validates the result.
func DecodeState(token string) (State, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	parts := strings.SplitN(string(raw), "|", 3)
	if len(parts) != 3 {
		return State{}, fmt.Errorf("%w: malformed payload", ErrInvalidState)
	}
	if parts[0] != stateVersion {
		return State{}, fmt.Errorf("%w: unsupported version %q", ErrInvalidState, parts[0])
	}

	sequence, err := strconv.Atoi(parts[1])
	if err != nil || sequence < 1 {
		return State{}, fmt.Errorf("%w: bad sequence %q", ErrInvalidState, parts[1])
	}

	expression, err := Validate(parts[2])
	if err != nil {
		return State{}, err
	}
	return State{Expression: expression, Sequence: sequence}, nil
}

// RerollState rolls the state's expression with the next roll number.
func RerollState(s State, opts ...Option) (*Session, error) {
	return Roll(s.Expression, s.Sequence+1, opts...)
}
