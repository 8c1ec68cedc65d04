package router

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   content,
		Author:    &discordgo.User{ID: "u1"},
	}
}

func TestDispatchArgs(t *testing.T) {
	r := NewRouter()

	var got Args

	r.On("likes", "like", "sends likes", func(ctx *Context) error {
		got = ctx.Args
		assert.Equal(t, "like", ctx.Route.Name)

		return nil
	})

	require.NoError(t, r.Dispatch(nil, "!", "bot", message(`!like   123456 "two words"`)))
	assert.Equal(t, Args{"like", "123456", "two words"}, got)
	assert.Equal(t, "123456", got.Get(1))
	assert.Equal(t, "", got.Get(5))
	assert.Equal(t, "123456 two words", got.Join(1))
}

func TestDispatchIgnored(t *testing.T) {
	r := NewRouter()

	called := 0

	r.On("likes", "like", "sends likes", func(ctx *Context) error {
		called++

		return nil
	})

	bot := message("!like 1")
	bot.Author.Bot = true

	self := message("!like 1")
	self.Author.ID = "bot"

	noAuthor := message("!like 1")
	noAuthor.Author = nil

	for _, msg := range []*discordgo.Message{
		bot,
		self,
		noAuthor,
		message("like 1"),
		message("!"),
		message("?like 1"),
	} {
		assert.NoError(t, r.Dispatch(nil, "!", "bot", msg))
	}

	assert.Zero(t, called)
}

func TestDispatchNotMatched(t *testing.T) {
	r := NewRouter()

	r.On("likes", "like", "sends likes", func(ctx *Context) error {
		return nil
	})

	assert.ErrorIs(t, r.Dispatch(nil, "!", "bot", message("!likes 1")), ErrNotMatched)
}

func TestDispatchAlias(t *testing.T) {
	r := NewRouter()

	called := 0

	r.Group("likes").OnAlias("likechannels", "lists channels", []string{"lc"}, func(ctx *Context) error {
		called++

		return nil
	})

	require.NoError(t, r.Dispatch(nil, "!", "bot", message("!lc")))
	require.NoError(t, r.Dispatch(nil, "!", "bot", message("!likechannels")))
	assert.Equal(t, 2, called)
}

func TestMiddlewareOrder(t *testing.T) {
	r := NewRouter()

	var trace []string

	mark := func(name string) MiddlewareFunc {
		return func(handler HandlerFunc) HandlerFunc {
			return func(ctx *Context) error {
				trace = append(trace, name)

				return handler(ctx)
			}
		}
	}

	r.AppendMiddleware(mark("router-2"))
	r.PrependMiddleware(mark("router-1"))

	g := r.Group("likes")
	g.Middleware = append(g.Middleware, mark("group"))

	route := g.On("like", "sends likes", func(ctx *Context) error {
		trace = append(trace, "handler")

		return nil
	})
	route.Middleware = append(route.Middleware, mark("route"))

	require.NoError(t, r.Dispatch(nil, "!", "bot", message("!like")))
	assert.Equal(t, []string{"router-1", "router-2", "group", "route", "handler"}, trace)
}

func TestHandlerError(t *testing.T) {
	r := NewRouter()

	failure := errors.New("failure")

	r.On("likes", "like", "sends likes", func(ctx *Context) error {
		return failure
	})

	assert.ErrorIs(t, r.Dispatch(nil, "!", "bot", message("!like")), failure)
}

func TestRouteData(t *testing.T) {
	r := NewRouter()

	g := r.Group("admin").Set("auth", "group")
	route := g.On("setlikechannel", "allows channel", func(ctx *Context) error { return nil })

	assert.Equal(t, "group", route.Get("auth"))

	route.Data["auth"] = "route"

	assert.Equal(t, "route", route.Get("auth"))
	assert.Nil(t, route.Get("missing"))
	assert.Equal(t, "group", g.Data["auth"])
}

func TestGroupsSorted(t *testing.T) {
	r := NewRouter()

	r.Group("likes")
	r.Group("admin")
	r.Group("help")
	r.Group("admin").SetDescription("administration")

	require.Len(t, r.Groups, 3)

	var names []string
	for _, g := range r.Groups {
		names = append(names, g.Name)
	}

	assert.ElementsMatch(t, []string{"admin", "help", "likes"}, names)
	assert.Equal(t, "administration", r.Group("admin").Description)
}
