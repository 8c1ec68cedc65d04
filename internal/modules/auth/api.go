// Package auth provides bot module middleware for authentication on bot commands
package auth

import (
	"errors"

	"github.com/eientei/likebot/internal/bot"
	"github.com/eientei/likebot/internal/router"

	"github.com/bwmarrin/discordgo"
)

// RouteConfigKey is used in route/group data configuration
const RouteConfigKey = "auth"

var (
	// ErrNotAuthorized is returned when user is not authorized to execute this command
	ErrNotAuthorized = errors.New("not authorized")
	// ErrGuildOnly is returned when guild command is invoked in direct messages
	ErrGuildOnly = errors.New("command is only available in servers")
)

// RouteConfig holds authentication requirements for given route or route group
type RouteConfig struct {
	Permissions int64
	GuildOnly   bool
}

// Admin requires administrator permission in a server
var Admin = &RouteConfig{
	Permissions: discordgo.PermissionAdministrator,
	GuildOnly:   true,
}

// New provides module instacne
func New() bot.Module {
	return &module{}
}

type module struct {
	config *bot.Configuration
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config
	config.Router.AppendMiddleware(mod.middlewareAuth)

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {

}

func (mod *module) middlewareAuth(handler router.HandlerFunc) router.HandlerFunc {
	return func(ctx *router.Context) error {
		auth := routeConfig(ctx.Route)
		if auth == nil {
			return handler(ctx)
		}

		if auth.GuildOnly && ctx.Message.GuildID == "" {
			return ErrGuildOnly
		}

		if auth.Permissions == 0 || mod.config.HasPermission(ctx.Message, auth.Permissions) {
			return handler(ctx)
		}

		return ErrNotAuthorized
	}
}

func routeConfig(route *router.Route) *RouteConfig {
	switch v := route.Get(RouteConfigKey).(type) {
	case *RouteConfig:
		return v
	case RouteConfig:
		return &v
	default:
		return nil
	}
}
