package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/set-night/crouton/internal/dice"
)

const (
	// RerollControl is the control ID used when the state token does not fit.
	RerollControl     = "reroll"
	rerollTokenPrefix = RerollControl + ":"
)

// IsRerollControl reports whether id belongs to a reroll button.
func IsRerollControl(id string) bool {
	return id == RerollControl || strings.HasPrefix(id, rerollTokenPrefix)
}

// RollResult is a rendered roll ready to be sent.
type RollResult struct {
	ID        uuid.UUID
	Text      string
	ControlID string
	Session   *dice.Session
}

type RollService struct {
	opts []dice.Option
}

func NewRollService(opts ...dice.Option) *RollService {
	return &RollService{opts: opts}
}

// Roll rolls a fresh expression. controlLimit is the platform's maximum
// length for the reroll button's ID.
func (s *RollService) Roll(raw string, controlLimit int) (*RollResult, error) {
	session, err := dice.Roll(raw, 1, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("roll: %w", err)
	}
	return s.render(session, controlLimit)
}

// Reroll rolls the previous roll again. The state comes from the button's
// token when present and from the previous report's text otherwise.
func (s *RollService) Reroll(controlID, previousReport string, controlLimit int) (*RollResult, error) {
	if token, ok := strings.CutPrefix(controlID, rerollTokenPrefix); ok {
		state, err := dice.DecodeState(token)
		if err == nil {
			session, err := dice.RerollState(state, s.opts...)
			if err != nil {
				return nil, fmt.Errorf("reroll: %w", err)
			}
			return s.render(session, controlLimit)
		}
		slog.Warn("undecodable reroll token, falling back to message text", "error", err)
	}

	session, err := dice.Reroll(previousReport, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("reroll: %w", err)
	}
	return s.render(session, controlLimit)
}

func (s *RollService) render(session *dice.Session, controlLimit int) (*RollResult, error) {
	text, err := session.Render()
	if err != nil {
		return nil, fmt.Errorf("render roll: %w", err)
	}

	controlID := rerollTokenPrefix + dice.EncodeState(session.State())
	if len(controlID) > controlLimit {
		controlID = RerollControl
	}

	result := &RollResult{
		ID:        uuid.New(),
		Text:      text,
		ControlID: controlID,
		Session:   session,
	}
	slog.Debug("dice rolled",
		"roll_id", result.ID,
		"expression", session.Expression(),
		"sequence", session.Sequence(),
		"total", session.Total(),
	)
	return result, nil
}

// Odds describes the spread of an expression without rolling it.
func (s *RollService) Odds(raw string) (string, error) {
	stats, err := dice.Odds(raw)
	if err != nil {
		return "", fmt.Errorf("odds: %w", err)
	}
	expression, _ := dice.Validate(raw)

	text := fmt.Sprintf("# Odds for %s\n- Minimum: %d\n- Maximum: %d\n- Average: %s",
		expression, stats.Min, stats.Max, stats.Mean.String())
	if n := utf8.RuneCountInString(text); n > dice.MaxMessageLength {
		return "", fmt.Errorf("odds: %w: %d characters", dice.ErrMessageTooLarge, n)
	}
	return text, nil
}

// IsUserError reports whether err came from the player's input rather than
// from the bot.
func IsUserError(err error) bool {
	return errors.Is(err, dice.ErrInvalidExpression) ||
		errors.Is(err, dice.ErrMessageTooLarge) ||
		errors.Is(err, dice.ErrInvalidState)
}
