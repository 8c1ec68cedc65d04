package auth

import (
	"testing"

	"github.com/eientei/likebot/internal/bot"
	"github.com/eientei/likebot/internal/router"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*router.Router, *int) {
	t.Helper()

	log, _ := test.NewNullLogger()

	b, err := bot.NewBot(bot.Options{Log: log, Modules: []bot.Module{New()}})
	require.NoError(t, err)

	called := new(int)
	handler := func(ctx *router.Context) error {
		*called++

		return nil
	}

	b.Router.On("likes", "like", "sends likes", handler)
	b.Router.Group("admin").Set(RouteConfigKey, Admin).On("setlikechannel", "allows channel", handler)
	b.Router.Group("misc").Set(RouteConfigKey, RouteConfig{GuildOnly: true}).On("dmonly", "any place", handler)

	return b.Router, called
}

func dm(content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		Content:   content,
		Author:    &discordgo.User{ID: "u1"},
	}
}

func TestUnrestrictedRoute(t *testing.T) {
	r, called := newRouter(t)

	require.NoError(t, r.Dispatch(nil, "!", "bot", dm("!like 123456")))
	assert.Equal(t, 1, *called)
}

func TestGuildOnlyInDirectMessage(t *testing.T) {
	r, called := newRouter(t)

	assert.ErrorIs(t, r.Dispatch(nil, "!", "bot", dm("!setlikechannel")), ErrGuildOnly)
	assert.ErrorIs(t, r.Dispatch(nil, "!", "bot", dm("!dmonly")), ErrGuildOnly)
	assert.Zero(t, *called)
}

func TestRouteConfigValue(t *testing.T) {
	r, called := newRouter(t)

	msg := dm("!dmonly")
	msg.GuildID = "g1"

	require.NoError(t, r.Dispatch(nil, "!", "bot", msg))
	assert.Equal(t, 1, *called)
}
