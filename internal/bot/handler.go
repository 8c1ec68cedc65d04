package bot

import (
	"github.com/bwmarrin/discordgo"
)

func (bot *Bot) handlerMessageCreate(session *discordgo.Session, messageCreate *discordgo.MessageCreate) {
	err := bot.Router.Dispatch(session, bot.Prefix(messageCreate.GuildID), session.State.User.ID, messageCreate.Message)
	if err != nil {
		bot.Log.WithError(err).WithField("content", messageCreate.Content).Debug("Dispatching message")
	}
}

func (bot *Bot) handlerGuildCreate(_ *discordgo.Session, guildCreate *discordgo.GuildCreate) {
	s := bot.guild(guildCreate.ID)

	bot.m.Lock()
	bot.configure(s, guildCreate.Guild)
	bot.m.Unlock()

	bot.Log.WithField("guild", guildCreate.ID).WithField("prefix", bot.Prefix(guildCreate.ID)).Info("Joined guild")

	for _, m := range bot.Modules {
		m.Configure(&bot.Configuration, guildCreate.Guild)
	}
}
