// Package router provides command router
package router

import (
	"errors"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

var (
	// ErrInvalidArgumentNumber is returned when command is invoked with wrong number of arguments
	ErrInvalidArgumentNumber = errors.New("invalid argument number")
)

// Args provide abstraction for getting arguments
type Args []string

// Get returns bound-safe argument by index
func (args Args) Get(i int) string {
	if len(args) <= i {
		return ""
	}

	return args[i]
}

// Join joins arguments starting with given index
func (args Args) Join(i int) string {
	if len(args) <= i {
		return ""
	}

	return strings.Join(args[i:], " ")
}

// GroupSorterFunc provides sorting for groups
type GroupSorterFunc func(a, b *Group) bool

// RouteSorterFunc provides sorting for routes
type RouteSorterFunc func(a, b *Route) bool

// MatcherFunc implements matching message
type MatcherFunc func(raw string) bool

// MiddlewareFunc implements command wrapping
type MiddlewareFunc func(handler HandlerFunc) HandlerFunc

// HandlerFunc implements command execution
type HandlerFunc func(ctx *Context) error

// Context simplifies request handling
type Context struct {
	Session *discordgo.Session
	Message *discordgo.Message
	Route   *Route
	Args    Args
}

// React reacts to original message with emoji
func (ctx *Context) React(emoji string) (err error) {
	err = ctx.Session.MessageReactionAdd(ctx.Message.ChannelID, ctx.Message.ID, emoji)

	return
}

// Typing shows typing indicator in channel of original message
func (ctx *Context) Typing() error {
	return ctx.Session.ChannelTyping(ctx.Message.ChannelID)
}

// ReplyEmbedCustom replies to original message with custom embed
func (ctx *Context) ReplyEmbedCustom(embed *discordgo.MessageEmbed) (err error) {
	return ctx.ReplyComplex(&discordgo.MessageSend{
		Embed: embed,
	})
}

// ReplyComplex replies to original message with arbitrary content
func (ctx *Context) ReplyComplex(data *discordgo.MessageSend) (err error) {
	_, err = ctx.Session.ChannelMessageSendComplex(ctx.Message.ChannelID, data)

	return
}

// NewRouter returns new router instance
func NewRouter() *Router {
	return &Router{
		Routes: make(map[string]*Route),
		GroupSorter: func(a, b *Group) bool {
			return a.Name >= b.Name
		},
		DefaultRouteSorter: func(a, b *Route) bool {
			return a.Name >= b.Name
		},
	}
}

// Route describes command route
type Route struct {
	Router      *Router
	Matcher     MatcherFunc
	Handler     HandlerFunc
	Data        map[string]interface{}
	baked       HandlerFunc
	bake        sync.Once
	Name        string
	Description string
	Middleware  []MiddlewareFunc
	Groups      []*Group
	Alias       []string
	AliasHelp   bool
}

// Get returns route (or any of parent groups) config value
func (route *Route) Get(k string) interface{} {
	if v, ok := route.Data[k]; ok {
		return v
	}

	for _, g := range route.Groups {
		if v, ok := g.Data[k]; ok {
			return v
		}
	}

	return nil
}

// Baked returns route handler wrapped by router, group and route middlewares, in that order
func (route *Route) Baked() HandlerFunc {
	route.bake.Do(func() {
		var middlewares []MiddlewareFunc

		middlewares = append(middlewares, route.Router.Middleware...)

		for _, g := range route.Groups {
			middlewares = append(middlewares, g.Middleware...)
		}

		middlewares = append(middlewares, route.Middleware...)

		route.baked = route.Handler
		for i := len(middlewares) - 1; i >= 0; i-- {
			route.baked = middlewares[i](route.baked)
		}
	})

	return route.baked
}
