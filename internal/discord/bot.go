// Package discord serves Crouton's slash commands and voice-channel
// nicknames on Discord.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/set-night/crouton/internal/service"
)

// ErrorReporter forwards unexpected errors somewhere a human will see them.
type ErrorReporter interface {
	LogError(err error, where string)
}

type Deps struct {
	Rolls     *service.RollService
	Puns      *service.PunService
	Nicknames *service.NicknameService
	Presence  *service.PresenceService
	Cooldowns *service.Cooldowns
	Reporter  ErrorReporter
}

type Bot struct {
	rolls     *service.RollService
	puns      *service.PunService
	nicknames *service.NicknameService
	presence  *service.PresenceService
	cooldowns *service.Cooldowns
	reporter  ErrorReporter

	session Session
	ctx     context.Context
	after   func(d time.Duration, f func())

	mu        sync.Mutex
	botUserID string
	voice     map[string]string // guildID/userID -> voice channel
	menus     map[string]*resetMenu
}

func New(deps Deps) *Bot {
	return &Bot{
		rolls:     deps.Rolls,
		puns:      deps.Puns,
		nicknames: deps.Nicknames,
		presence:  deps.Presence,
		cooldowns: deps.Cooldowns,
		reporter:  deps.Reporter,
		ctx:       context.Background(),
		after:     func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		voice:     make(map[string]string),
		menus:     make(map[string]*resetMenu),
	}
}

// Run connects to the gateway and serves events until ctx is done.
func (b *Bot) Run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates | discordgo.IntentsGuildMembers

	b.session = dg
	b.ctx = ctx

	dg.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) { b.onReady(r) })
	dg.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) { b.onInteractionCreate(i) })
	dg.AddHandler(func(_ *discordgo.Session, v *discordgo.VoiceStateUpdate) { b.onVoiceStateUpdate(v) })
	dg.AddHandler(func(_ *discordgo.Session, m *discordgo.GuildMemberUpdate) { b.onGuildMemberUpdate(m) })

	if b.presence != nil {
		b.presence.AddSetter(b.SetPresence)
	}

	if err := dg.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	slog.Info("discord bot started")

	<-ctx.Done()

	slog.Info("discord bot stopping")
	if err := dg.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}
	return nil
}

func (b *Bot) onReady(r *discordgo.Ready) {
	b.mu.Lock()
	if r.User != nil {
		b.botUserID = r.User.ID
	}
	b.mu.Unlock()

	slog.Info("discord ready", "user_id", b.selfID(), "guilds", len(r.Guilds))

	// The gateway forgets the status on every new session.
	if b.presence != nil {
		if p, err := b.presence.Next(); err == nil {
			if err := b.SetPresence(b.ctx, p); err != nil {
				slog.Error("failed to set presence", "error", err)
			}
		}
	}
}

func (b *Bot) selfID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.botUserID
}

func (b *Bot) report(err error, where string) {
	if b.reporter != nil {
		b.reporter.LogError(err, "discord "+where)
	}
}

func (b *Bot) recoverPanic(where string) {
	if r := recover(); r != nil {
		slog.Error("panic recovered in discord handler", "panic", r, "handler", where)
		b.report(fmt.Errorf("panic: %v", r), where)
	}
}
