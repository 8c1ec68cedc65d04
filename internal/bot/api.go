// Package bot provides main bot implementation
package bot

import (
	"sync"

	"github.com/eientei/likebot/integration/freefire"
	"github.com/eientei/likebot/internal/channels"
	"github.com/eientei/likebot/internal/config"
	"github.com/eientei/likebot/internal/embed"
	"github.com/eientei/likebot/internal/router"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

// Options provide configuration options for bot
type Options struct {
	Discord   *discordgo.Session
	Config    *config.Root
	Log       *logrus.Logger
	Channels  *channels.Store
	Freefire  *freefire.Client
	Formatter *embed.Formatter
	Modules   []Module
}

// Configuration store configuration for bot
type Configuration struct {
	Discord   *discordgo.Session
	Config    *config.Root
	Log       *logrus.Logger
	Router    *router.Router
	Channels  *channels.Store
	Freefire  *freefire.Client
	Formatter *embed.Formatter
	bot       *Bot
	Modules   []Module
}

// Prefix returns command prefix of guild
func (conf *Configuration) Prefix(guildID string) string {
	s := conf.bot.guild(guildID)

	conf.bot.m.RLock()
	defer conf.bot.m.RUnlock()

	return s.prefix
}

// HasPermission returns true if message author owns the guild or has a role granting any of permissions.
// Direct messages never carry permissions.
func (conf *Configuration) HasPermission(msg *discordgo.Message, permissions int64) bool {
	if msg.GuildID == "" || msg.Author == nil {
		return false
	}

	guild, err := conf.Discord.State.Guild(msg.GuildID)
	if err != nil {
		guild, err = conf.Discord.Guild(msg.GuildID)
	}

	if err == nil && guild.OwnerID == msg.Author.ID {
		return true
	}

	member, err := conf.ensureMember(msg)
	if err != nil {
		return false
	}

	for _, r := range member.Roles {
		var role *discordgo.Role

		role, err = conf.Discord.State.Role(msg.GuildID, r)
		if err != nil {
			conf.Log.WithError(err).WithField("guild", msg.GuildID).Error("Loading role", r)
			continue
		}

		if evalPermissions(role, permissions) {
			return true
		}
	}

	return false
}

func (conf *Configuration) ensureMember(msg *discordgo.Message) (*discordgo.Member, error) {
	if msg.Member != nil {
		return msg.Member, nil
	}

	member, err := conf.Discord.GuildMember(msg.GuildID, msg.Author.ID)
	if err != nil {
		conf.Log.WithError(err).Error("Loading member", msg.GuildID, msg.Author.ID)

		return nil, err
	}

	msg.Member = member

	return member, nil
}

// evalPermissions reports whether role grants any of permissions, administrator grants all
func evalPermissions(role *discordgo.Role, permissions int64) bool {
	if role == nil {
		return false
	}

	if role.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}

	return permissions != 0 && role.Permissions&permissions != 0
}

// Module interface incapsulates methods for distinct functionality
type Module interface {
	Initialize(bot *Configuration) error
	Configure(bot *Configuration, server *discordgo.Guild)
	Shutdown(bot *Configuration)
}

// NewBot provides new instance of bot
func NewBot(options Options) (*Bot, error) {
	if options.Log == nil {
		options.Log = logrus.New()
	}

	if options.Config == nil {
		options.Config = &config.Root{}
	}

	bot := &Bot{
		Configuration: Configuration{
			Discord:   options.Discord,
			Config:    options.Config,
			Log:       options.Log,
			Router:    router.NewRouter(),
			Channels:  options.Channels,
			Freefire:  options.Freefire,
			Formatter: options.Formatter,
			Modules:   options.Modules,
		},
		m:       &sync.RWMutex{},
		servers: make(map[string]*server),
	}

	bot.Configuration.bot = bot

	for _, m := range bot.Modules {
		err := m.Initialize(&bot.Configuration)
		if err != nil {
			return nil, err
		}
	}

	if bot.Discord != nil {
		bot.Discord.AddHandler(bot.handlerGuildCreate)
		bot.Discord.AddHandler(bot.handlerMessageCreate)
	}

	return bot, nil
}
