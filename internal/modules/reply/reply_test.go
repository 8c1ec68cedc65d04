package reply

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/eientei/likebot/integration/freefire"
	"github.com/eientei/likebot/internal/bot"
	"github.com/eientei/likebot/internal/embed"
	"github.com/eientei/likebot/internal/likes"
	"github.com/eientei/likebot/internal/modules/auth"
	"github.com/eientei/likebot/internal/router"

	"github.com/bwmarrin/discordgo"
	perrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBot(t *testing.T) (*bot.Bot, *test.Hook) {
	t.Helper()

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	b, err := bot.NewBot(bot.Options{
		Log:       log,
		Formatter: &embed.Formatter{Failure: 0xe74c3c, Warning: 0xf39c12},
		Modules:   []bot.Module{New()},
	})
	require.NoError(t, err)

	return b, hook
}

func message(content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   content,
		Author:    &discordgo.User{ID: "u1"},
	}
}

func TestRender(t *testing.T) {
	b, _ := newBot(t)

	mod := &module{config: &b.Configuration, now: func() time.Time { return time.Unix(0, 0) }}

	for _, tt := range []struct {
		err      error
		title    string
		contains string
		expected bool
	}{
		{&likes.AccessDeniedError{Allowed: []string{"1", "2"}}, "❌ Access Denied", "<#1>, <#2>", true},
		{&likes.CooldownError{Remaining: 18}, "❌ Cooldown", "18 seconds", true},
		{auth.ErrNotAuthorized, "❌ Access Denied", "administrator", true},
		{auth.ErrGuildOnly, "❌ Server Only", "server", true},
		{router.ErrInvalidArgumentNumber, "❌ Invalid Usage", "help", true},
		{perrors.Wrap(freefire.ErrNotFound, "status 404"), "❌ Player Not Found", "UID or tag", true},
		{perrors.Wrap(freefire.ErrProfileUnavailable, "status 502"), "⚠️ Service Unavailable", "", true},
		{freefire.ErrNotConfigured, "❌ Not Configured", "", false},
		{errors.New("disk on fire"), "❌ Critical Error", "unexpected", false},
	} {
		e, expected := mod.render(tt.err)

		assert.Equal(t, tt.title, e.Title, tt.err.Error())
		assert.Contains(t, e.Description, tt.contains, tt.err.Error())
		assert.Equal(t, tt.expected, expected, tt.err.Error())
	}
}

func TestMiddlewarePassesSuccess(t *testing.T) {
	b, hook := newBot(t)

	b.Router.On("likes", "like", "sends likes", func(ctx *router.Context) error {
		return nil
	})

	require.NoError(t, b.Router.Dispatch(nil, "!", "bot", message("!like")))
	assert.Empty(t, hook.AllEntries())
}

func TestMiddlewareLogsError(t *testing.T) {
	b, hook := newBot(t)

	b.Router.On("likes", "like", "sends likes", func(ctx *router.Context) error {
		return fmt.Errorf("wrapped: %w", &likes.CooldownError{Remaining: 3})
	})

	err := b.Router.Dispatch(nil, "!", "bot", message("!like"))

	var cooldown *likes.CooldownError

	require.True(t, errors.As(err, &cooldown))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.Equal(t, "like", hook.LastEntry().Data["route"])
}

func TestMiddlewareRecoversPanic(t *testing.T) {
	b, hook := newBot(t)

	b.Router.On("likes", "like", "sends likes", func(ctx *router.Context) error {
		panic("boom")
	})

	err := b.Router.Dispatch(nil, "!", "bot", message("!like"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
