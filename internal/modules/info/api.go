// Package info provides bot module showing free fire player profiles
package info

import (
	"bytes"
	"context"
	"errors"

	"github.com/eientei/likebot/internal/bot"
	"github.com/eientei/likebot/internal/embed"
	"github.com/eientei/likebot/internal/router"

	"github.com/bwmarrin/discordgo"
	uuid "github.com/satori/go.uuid"
)

// ErrNotWired is returned when bot lacks upstream client
var ErrNotWired = errors.New("info module requires freefire client")

// New provides module instacne
func New() bot.Module {
	return &module{}
}

type module struct {
	config *bot.Configuration
	ctx    context.Context
	cancel context.CancelFunc
}

func (mod *module) Initialize(config *bot.Configuration) error {
	if config.Freefire == nil {
		return ErrNotWired
	}

	mod.config = config
	mod.ctx, mod.cancel = context.WithCancel(context.Background())

	route := config.Router.Group("info").SetDescription("player profiles").
		OnAlias("info", "<uid or tag> shows player profile", []string{"profile"}, mod.commandInfo)
	route.AliasHelp = true

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {
	mod.cancel()
}

func imageName() string {
	return "outfit_" + uuid.NewV4().String()[:8] + ".png"
}

func (mod *module) commandInfo(ctx *router.Context) error {
	if len(ctx.Args) < 2 {
		return router.ErrInvalidArgumentNumber
	}

	err := ctx.Typing()
	if err != nil {
		mod.config.Log.WithError(err).Debug("Sending typing indicator")
	}

	profile, err := mod.config.Freefire.LookupProfile(mod.ctx, ctx.Args.Join(1))
	if err != nil {
		return err
	}

	e := mod.config.Formatter.Profile(profile)
	data := &discordgo.MessageSend{
		Embed: e,
	}

	img, err := mod.config.Freefire.Image(mod.ctx, profile.UID)
	if err != nil {
		mod.config.Log.WithError(err).WithField("uid", profile.UID).Warn("Fetching outfit image")
	} else {
		name := imageName()

		embed.ProfileImage(e, name)

		data.Files = []*discordgo.File{
			{
				Name:        name,
				ContentType: "image/png",
				Reader:      bytes.NewReader(img),
			},
		}
	}

	return ctx.ReplyComplex(data)
}
