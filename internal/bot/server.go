package bot

import (
	"github.com/eientei/likebot/internal/config"

	"github.com/bwmarrin/discordgo"
)

type server struct {
	prefix string
}

func (bot *Bot) guild(guildID string) *server {
	bot.m.RLock()
	s, ok := bot.servers[guildID]
	bot.m.RUnlock()

	if ok {
		return s
	}

	bot.m.Lock()
	defer bot.m.Unlock()

	if s, ok = bot.servers[guildID]; ok {
		return s
	}

	s = &server{
		prefix: bot.resolvePrefix(guildID),
	}

	bot.servers[guildID] = s

	return s
}

func (bot *Bot) resolvePrefix(guildID string) string {
	prefix := bot.Config.ServerPrefix(guildID)

	if prefix == "" {
		prefix = config.DefaultPrefix
	}

	return prefix
}

func (bot *Bot) configure(s *server, guild *discordgo.Guild) {
	s.prefix = bot.resolvePrefix(guild.ID)
}
