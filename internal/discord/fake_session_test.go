package discord

import (
	"errors"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// fakeSession is an in-memory Session that records what the bot sends.
type fakeSession struct {
	mu sync.Mutex

	guild    *discordgo.Guild
	members  map[string]*discordgo.Member
	channels []*discordgo.Channel

	responses []*discordgo.InteractionResponse
	edits     []*discordgo.WebhookEdit
	deletes   int
	msgEdits  []*discordgo.MessageEdit
	dms       []string
	nicknames map[string]string
	statuses  []discordgo.UpdateStatusData
	nextID    int
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		guild: &discordgo.Guild{
			ID:      "g1",
			Name:    "The Bakery",
			OwnerID: "owner",
			Roles: []*discordgo.Role{
				{ID: "g1", Position: 0},
				{ID: "baker", Position: 5, Permissions: discordgo.PermissionManageNicknames},
				{ID: "admin", Position: 10, Permissions: discordgo.PermissionAdministrator},
			},
		},
		members: map[string]*discordgo.Member{
			"bot":   {User: &discordgo.User{ID: "bot", Bot: true}, Roles: []string{"baker"}},
			"u1":    {User: &discordgo.User{ID: "u1", Username: "sam"}, Nick: "Sam"},
			"boss":  {User: &discordgo.User{ID: "boss", Username: "boss"}, Roles: []string{"admin"}},
			"owner": {User: &discordgo.User{ID: "owner", Username: "owner"}},
		},
		channels: []*discordgo.Channel{
			{ID: "tavern", Name: "Tavern", Type: discordgo.ChannelTypeGuildVoice},
			{ID: "dungeon", Name: "Dungeon", Type: discordgo.ChannelTypeGuildVoice},
			{ID: "lobby", Name: "Lobby", Type: discordgo.ChannelTypeGuildVoice},
		},
		nicknames: make(map[string]string),
	}
}

func (f *fakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeSession) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, edit)
	f.nextID++
	return &discordgo.Message{ID: "m" + strconv.Itoa(f.nextID)}, nil
}

func (f *fakeSession) InteractionResponseDelete(*discordgo.Interaction, ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	return nil
}

func (f *fakeSession) ChannelMessageEditComplex(m *discordgo.MessageEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgEdits = append(f.msgEdits, m)
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

func (f *fakeSession) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dms = append(f.dms, channelID+": "+content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *fakeSession) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: "dm-" + recipientID, Type: discordgo.ChannelTypeDM}, nil
}

func (f *fakeSession) Guild(guildID string, _ ...discordgo.RequestOption) (*discordgo.Guild, error) {
	if guildID != f.guild.ID {
		return nil, errors.New("unknown guild")
	}
	return f.guild, nil
}

func (f *fakeSession) GuildChannels(string, ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	return f.channels, nil
}

func (f *fakeSession) GuildMember(_, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[userID]
	if !ok {
		return nil, errors.New("unknown member")
	}
	return m, nil
}

func (f *fakeSession) GuildMemberNickname(_, userID, nickname string, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nicknames[userID] = nickname
	return nil
}

func (f *fakeSession) UpdateStatusComplex(usd discordgo.UpdateStatusData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, usd)
	return nil
}

func (f *fakeSession) lastResponse() *discordgo.InteractionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.responses) == 0 {
		return nil
	}
	return f.responses[len(f.responses)-1]
}

func (f *fakeSession) lastEdit() *discordgo.WebhookEdit {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		return nil
	}
	return f.edits[len(f.edits)-1]
}
