package handler

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/set-night/crouton/internal/config"
	"github.com/set-night/crouton/internal/dice"
	"github.com/set-night/crouton/internal/domain"
	"github.com/set-night/crouton/internal/service"
	"github.com/set-night/crouton/internal/telegram"
	"github.com/set-night/crouton/internal/telegram/telegramtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPuns []domain.Pun

func (s stubPuns) ListPunsForGuild(context.Context, string) ([]domain.Pun, error) {
	return s, nil
}

func newTestHandler(t *testing.T, puns stubPuns) (*Handler, *telegramtest.Server) {
	t.Helper()
	srv, b := telegramtest.NewServer(t)

	logger := telegram.NewTelegramLogger(&config.Config{})
	logger.SetBot(b)

	h := New(Deps{
		Bot:      b,
		Rolls:    service.NewRollService(dice.WithRand(rand.New(rand.NewPCG(3, 4)))),
		Puns:     service.NewPunService(puns),
		TgLogger: logger,
	})
	return h, srv
}

func commandUpdate(text string) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   10,
			Chat: models.Chat{ID: 555, Type: "group"},
			From: &models.User{ID: 42, FirstName: "Sam"},
			Text: text,
		},
	}
}

func rerollUpdate(data, text string) *models.Update {
	return &models.Update{
		ID: 2,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cq-1",
			From: models.User{ID: 42},
			Data: data,
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{
					ID:   77,
					Chat: models.Chat{ID: 555, Type: "group"},
					Text: text,
				},
			},
		},
	}
}

func callbackData(t *testing.T, markup string) string {
	t.Helper()
	var kb models.InlineKeyboardMarkup
	require.NoError(t, json.Unmarshal([]byte(markup), &kb))
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 1)
	return kb.InlineKeyboard[0][0].CallbackData
}

func TestHandleRoll(t *testing.T) {
	h, srv := newTestHandler(t, nil)
	ctx := context.Background()

	h.handleRoll(ctx, h.bot, commandUpdate("/roll 1D20 2d4"))

	sent := srv.Requests("sendMessage")
	require.Len(t, sent, 1)
	text := sent[0].Fields["text"]
	assert.True(t, strings.HasPrefix(text, "# Here are your roll results!\n## Roll #1\n> 1d20 2d4\n"), text)
	assert.Equal(t, "555", sent[0].Fields["chat_id"])

	data := callbackData(t, sent[0].Fields["reply_markup"])
	assert.True(t, service.IsRerollControl(data))
	assert.LessOrEqual(t, len(data), config.MaxTelegramCallbackData)
}

func TestHandleRollInvalid(t *testing.T) {
	h, srv := newTestHandler(t, nil)

	h.handleRoll(context.Background(), h.bot, commandUpdate("/roll 1d20a"))

	sent := srv.Requests("sendMessage")
	require.Len(t, sent, 1)
	assert.Equal(t, generalErrorText, sent[0].Fields["text"])
}

func TestHandleRollWithoutDice(t *testing.T) {
	h, srv := newTestHandler(t, nil)

	h.handleRoll(context.Background(), h.bot, commandUpdate("/roll"))

	sent := srv.Requests("sendMessage")
	require.Len(t, sent, 1)
	assert.Equal(t, missingDiceText, sent[0].Fields["text"])
}

func TestHandleReroll(t *testing.T) {
	h, srv := newTestHandler(t, nil)
	ctx := context.Background()

	h.handleRoll(ctx, h.bot, commandUpdate("/roll 3d6"))
	first := srv.Requests("sendMessage")[0]

	h.handleReroll(ctx, h.bot, rerollUpdate(callbackData(t, first.Fields["reply_markup"]), first.Fields["text"]))

	assert.Len(t, srv.Requests("answerCallbackQuery"), 1)

	edits := srv.Requests("editMessageReplyMarkup")
	require.Len(t, edits, 1)
	assert.Equal(t, "77", edits[0].Fields["message_id"])

	sent := srv.Requests("sendMessage")
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1].Fields["text"], "## Roll #2\n> 3d6\n")
	assert.True(t, service.IsRerollControl(callbackData(t, sent[1].Fields["reply_markup"])))
}

func TestHandleRerollFromText(t *testing.T) {
	h, srv := newTestHandler(t, nil)

	report := "# Here are your roll results!\n## Roll #4\n> 1d8\n- 1d8: 3\n## Total: 3"
	h.handleReroll(context.Background(), h.bot, rerollUpdate(service.RerollControl, report))

	sent := srv.Requests("sendMessage")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Fields["text"], "## Roll #5\n> 1d8\n")
}

func TestHandleRerollUnreadable(t *testing.T) {
	h, srv := newTestHandler(t, nil)

	h.handleReroll(context.Background(), h.bot, rerollUpdate(service.RerollControl, "just chatting"))

	assert.Empty(t, srv.Requests("editMessageReplyMarkup"))
	sent := srv.Requests("sendMessage")
	require.Len(t, sent, 1)
	assert.Equal(t, generalErrorText, sent[0].Fields["text"])
}

func TestHandleOdds(t *testing.T) {
	h, srv := newTestHandler(t, nil)

	h.handleOdds(context.Background(), h.bot, commandUpdate("/odds@CroutonBot 2d6"))

	sent := srv.Requests("sendMessage")
	require.Len(t, sent, 1)
	assert.Equal(t, "# Odds for 2d6\n- Minimum: 2\n- Maximum: 12\n- Average: 7", sent[0].Fields["text"])
}

func TestHandlePun(t *testing.T) {
	h, srv := newTestHandler(t, stubPuns{{ID: 1, Pun: "Rye not?"}})

	h.handlePun(context.Background(), h.bot, commandUpdate("/pun"))

	sent := srv.Requests("sendMessage")
	require.Len(t, sent, 1)
	assert.Equal(t, "Rye not?", sent[0].Fields["text"])
}

func TestHandlePunEmpty(t *testing.T) {
	h, srv := newTestHandler(t, nil)

	h.handlePun(context.Background(), h.bot, commandUpdate("/pun"))

	sent := srv.Requests("sendMessage")
	require.Len(t, sent, 1)
	assert.Equal(t, noPunsText, sent[0].Fields["text"])
}

func TestHandleStart(t *testing.T) {
	h, srv := newTestHandler(t, nil)

	h.handleStart(context.Background(), h.bot, commandUpdate("/start"))

	sent := srv.Requests("sendMessage")
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Fields["text"], "/roll")
}

func TestMatchCommand(t *testing.T) {
	match := matchCommand("roll")
	assert.True(t, match(commandUpdate("/roll 1d20")))
	assert.True(t, match(commandUpdate("/roll@CroutonBot 1d20")))
	assert.False(t, match(commandUpdate("/rolls 1d20")))
	assert.False(t, match(commandUpdate("roll 1d20")))
	assert.False(t, match(&models.Update{}))
}
