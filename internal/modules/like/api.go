// Package like provides bot module for sending free fire likes and managing channels they are allowed in
package like

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"time"

	"github.com/eientei/likebot/internal/bot"
	"github.com/eientei/likebot/internal/cooldown"
	"github.com/eientei/likebot/internal/embed"
	"github.com/eientei/likebot/internal/likes"
	"github.com/eientei/likebot/internal/modules/auth"
	"github.com/eientei/likebot/internal/router"

	"github.com/bwmarrin/discordgo"
	perrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidChannel is returned for channel arguments not naming a text channel of current server
	ErrInvalidChannel = errors.New("invalid channel")
	// ErrNotWired is returned when bot lacks channel store or upstream client
	ErrNotWired = errors.New("like module requires channel store and freefire client")
)

var (
	channelMention = regexp.MustCompile(`^<#(\d+)>$`)
	channelID      = regexp.MustCompile(`^\d+$`)
)

// New provides module instacne
func New() bot.Module {
	return &module{}
}

type module struct {
	config  *bot.Configuration
	service *likes.Service
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func (mod *module) Initialize(config *bot.Configuration) error {
	if config.Channels == nil || config.Freefire == nil {
		return ErrNotWired
	}

	mod.config = config
	mod.service = likes.New(config.Channels, cooldown.New(config.Config.Private.Cooldown), config.Freefire)
	mod.ctx, mod.cancel = context.WithCancel(context.Background())

	config.Router.Group("likes").SetDescription("free fire likes").
		On("like", "<uid> sends likes to player", mod.commandLike)

	admin := config.Router.Group("admin").SetDescription("like channels, administrators only").
		Set(auth.RouteConfigKey, auth.Admin)

	admin.On("setlikechannel", "[#channel] allows like in channel", mod.commandSetChannel)
	admin.On("removelikechannel", "[#channel] removes channel from allowed", mod.commandRemoveChannel)
	admin.On("likechannels", "lists channels like is allowed in", mod.commandListChannels)

	mod.wg.Add(1)

	go mod.janitor()

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {
	mod.cancel()
	mod.wg.Wait()
}

func (mod *module) janitor() {
	defer mod.wg.Done()

	table := mod.service.Cooldown

	ticker := time.NewTicker(table.Window())
	defer ticker.Stop()

	for {
		select {
		case <-mod.ctx.Done():
			return
		case now := <-ticker.C:
			if n := table.Prune(now); n > 0 {
				mod.config.Log.WithField("pruned", n).WithField("left", table.Len()).Debug("Pruned cooldowns")
			}
		}
	}
}

func (mod *module) commandLike(ctx *router.Context) error {
	if len(ctx.Args) != 2 {
		return router.ErrInvalidArgumentNumber
	}

	uid := ctx.Args.Get(1)

	out, err := mod.service.Like(mod.ctx, likes.Request{
		GuildID:   ctx.Message.GuildID,
		ChannelID: ctx.Message.ChannelID,
		UserID:    ctx.Message.Author.ID,
		UID:       uid,
	})
	if err != nil {
		return err
	}

	mod.config.Log.WithFields(logrus.Fields{
		"guild":   ctx.Message.GuildID,
		"user":    ctx.Message.Author.ID,
		"uid":     uid,
		"outcome": out.Kind.String(),
	}).Info("Like")

	return ctx.ReplyEmbedCustom(mod.config.Formatter.Like(uid, out, time.Now()))
}

func (mod *module) commandSetChannel(ctx *router.Context) error {
	channel, err := mod.channelArg(ctx)
	if err != nil {
		return err
	}

	added, err := mod.config.Channels.Add(ctx.Message.GuildID, channel)
	if err != nil {
		return perrors.Wrap(err, "adding like channel")
	}

	if !added {
		return ctx.ReplyEmbedCustom(mod.config.Formatter.Notice(embed.ChannelAlreadyAllowed(channel)))
	}

	return ctx.ReplyEmbedCustom(mod.config.Formatter.Notice(embed.ChannelAdded(channel)))
}

func (mod *module) commandRemoveChannel(ctx *router.Context) error {
	channel, err := mod.channelArg(ctx)
	if err != nil {
		return err
	}

	removed, err := mod.config.Channels.Remove(ctx.Message.GuildID, channel)
	if err != nil {
		return perrors.Wrap(err, "removing like channel")
	}

	if !removed {
		return ctx.ReplyEmbedCustom(mod.config.Formatter.Notice(embed.ChannelNotListed(channel)))
	}

	return ctx.ReplyEmbedCustom(mod.config.Formatter.Notice(embed.ChannelRemoved(channel)))
}

func (mod *module) commandListChannels(ctx *router.Context) error {
	if len(ctx.Args) > 1 {
		return router.ErrInvalidArgumentNumber
	}

	channels, restricted := mod.config.Channels.List(ctx.Message.GuildID)

	return ctx.ReplyEmbedCustom(mod.config.Formatter.Notice(embed.ChannelList(channels, restricted)))
}

// channelArg returns channel named by first argument, or current channel when omitted
func (mod *module) channelArg(ctx *router.Context) (string, error) {
	if len(ctx.Args) > 2 {
		return "", router.ErrInvalidArgumentNumber
	}

	id, err := parseChannel(ctx.Args.Get(1), ctx.Message.ChannelID)
	if err != nil {
		return "", err
	}

	if id == ctx.Message.ChannelID {
		return id, nil
	}

	ch, err := ctx.Session.State.Channel(id)
	if err != nil {
		ch, err = ctx.Session.Channel(id)
	}

	if err != nil || ch.GuildID != ctx.Message.GuildID || !textChannel(ch) {
		return "", ErrInvalidChannel
	}

	return id, nil
}

func textChannel(ch *discordgo.Channel) bool {
	return ch.Type == discordgo.ChannelTypeGuildText || ch.Type == discordgo.ChannelTypeGuildNews
}

func parseChannel(arg, current string) (string, error) {
	if arg == "" {
		return current, nil
	}

	if m := channelMention.FindStringSubmatch(arg); m != nil {
		return m[1], nil
	}

	if channelID.MatchString(arg) {
		return arg, nil
	}

	return "", ErrInvalidChannel
}
