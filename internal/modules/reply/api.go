// Package reply provides bot module for automated emoji and error replies depending on result of execution
package reply

import (
	"time"

	"github.com/eientei/likebot/integration/freefire"
	"github.com/eientei/likebot/internal/bot"
	"github.com/eientei/likebot/internal/embed"
	"github.com/eientei/likebot/internal/likes"
	"github.com/eientei/likebot/internal/modules/auth"
	"github.com/eientei/likebot/internal/modules/like"
	"github.com/eientei/likebot/internal/router"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	emojiX = "\xe2\x9d\x8c"
)

// New provides module instacne
func New() bot.Module {
	return &module{
		now: time.Now,
	}
}

type module struct {
	config *bot.Configuration
	now    func() time.Time
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config

	if config.Formatter == nil {
		config.Formatter = &embed.Formatter{}
	}

	config.Router.PrependMiddleware(mod.middlewareReply)

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {

}

func (mod *module) middlewareReply(handler router.HandlerFunc) router.HandlerFunc {
	return func(ctx *router.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("panic: %v", r)

				mod.reply(ctx, err)
			}
		}()

		err = handler(ctx)
		if err == nil {
			return nil
		}

		mod.reply(ctx, err)

		return err
	}
}

func (mod *module) reply(ctx *router.Context, origerr error) {
	msg, expected := mod.render(origerr)

	entry := mod.config.Log.WithError(origerr).WithFields(logrus.Fields{
		"route":   ctx.Route.Name,
		"guild":   ctx.Message.GuildID,
		"channel": ctx.Message.ChannelID,
		"user":    ctx.Message.Author.ID,
	})

	if expected {
		entry.Debug("Command refused")
	} else {
		entry.Error("Executing command returned error")
	}

	if ctx.Session == nil {
		return
	}

	err := ctx.React(emojiX)
	if err != nil {
		mod.config.Log.WithError(err).Error("Replying with error status")
	}

	err = ctx.ReplyEmbedCustom(msg)
	if err != nil {
		mod.config.Log.WithError(err).Error("Replying with error message")
	}
}

// render converts command error into user-facing message, reporting whether error was an expected refusal
func (mod *module) render(err error) (*discordgo.MessageEmbed, bool) {
	f := mod.config.Formatter
	now := mod.now()

	var (
		denied   *likes.AccessDeniedError
		cooldown *likes.CooldownError
	)

	switch {
	case errors.As(err, &denied):
		return f.Error("Access Denied", embed.AccessDenied(denied.Allowed), now), true
	case errors.As(err, &cooldown):
		return f.Error("Cooldown", embed.Cooldown(cooldown.Remaining), now), true
	case errors.Is(err, auth.ErrNotAuthorized):
		return f.Error("Access Denied", "You need administrator permissions to use this command.", now), true
	case errors.Is(err, auth.ErrGuildOnly):
		return f.Error("Server Only", "This command can only be used in a server.", now), true
	case errors.Is(err, router.ErrInvalidArgumentNumber):
		return f.Error("Invalid Usage", "Wrong number of arguments. See `help` for usage.", now), true
	case errors.Is(err, like.ErrInvalidChannel):
		return f.Error("Invalid Channel", "Mention a text channel of this server, like #general.", now), true
	case errors.Is(err, freefire.ErrInvalidUID):
		return f.Error("Invalid UID", "Invalid UID. It must contain only numbers and be at least 6 characters long.", now), true
	case errors.Is(err, freefire.ErrNotFound):
		return f.Error("Player Not Found", "No player was found for this UID or tag.", now), true
	case errors.Is(err, freefire.ErrProfileUnavailable):
		return f.Unavailable(), true
	case errors.Is(err, freefire.ErrNotConfigured):
		return f.Error("Not Configured", "This command is not configured on this bot.", now), false
	default:
		return f.Critical(now), false
	}
}
