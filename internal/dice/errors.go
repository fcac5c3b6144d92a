package dice

import "errors"

var (
	// ErrInvalidExpression indicates a dice expression does not match `<count>d<sides>( <count>d<sides>)*`.
	ErrInvalidExpression = errors.New("invalid dice expression")

	// ErrMessageTooLarge indicates a rendered report exceeds MaxMessageLength.
	ErrMessageTooLarge = errors.New("roll report exceeds message length limit")

	// ErrInvalidSequence indicates a roll sequence number below 1.
	ErrInvalidSequence = errors.New("roll sequence must be positive")

	// ErrInvalidState indicates a reroll token could not be decoded.
	ErrInvalidState = errors.New("invalid roll state token")
)
