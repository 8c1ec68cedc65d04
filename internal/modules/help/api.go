// Package help provides bot module for command help message
package help

import (
	"strings"

	"github.com/eientei/likebot/internal/bot"
	"github.com/eientei/likebot/internal/router"

	"github.com/bwmarrin/discordgo"
)

// New provides module instacne
func New() bot.Module {
	return &module{}
}

type module struct {
	config *bot.Configuration
}

func (mod *module) Initialize(config *bot.Configuration) error {
	mod.config = config

	group := config.Router.Group("help").SetDescription("help & status")

	group.On("help", "prints help", mod.commandHelp)

	return nil
}

func (mod *module) Configure(*bot.Configuration, *discordgo.Guild) {

}

func (mod *module) Shutdown(*bot.Configuration) {

}

func renderName(prefix string, r *router.Route) string {
	if len(r.Alias) == 0 || !r.AliasHelp {
		return prefix + r.Name
	}

	return prefix + r.Name + " | " + prefix + strings.Join(r.Alias, " | "+prefix)
}

func renderHelp(prefix string, rt *router.Router) string {
	max := 0

	for _, v := range rt.Routes {
		name := renderName(prefix, v)
		if len(name) > max {
			max = len(name)
		}
	}

	buf := &strings.Builder{}

	buf.WriteString("```autohotkey\n")

	for _, g := range rt.Groups {
		_, _ = buf.WriteString("\n==" + strings.ToUpper(g.Name) + "==")

		if len(g.Description) > 0 {
			_, _ = buf.WriteString(" ")
			_, _ = buf.WriteString(g.Description)
		}

		_, _ = buf.WriteString("\n")

		for _, v := range g.Routes {
			name := renderName(prefix, v)
			_, _ = buf.WriteString(strings.Repeat(" ", max-len(name)))
			_, _ = buf.WriteString(name)
			_, _ = buf.WriteString(": ")
			_, _ = buf.WriteString(v.Description)
			buf.WriteString("\n")
		}
	}

	buf.WriteString("```")

	return buf.String()
}

func (mod *module) commandHelp(ctx *router.Context) error {
	help := renderHelp(mod.config.Prefix(ctx.Message.GuildID), ctx.Route.Router)

	return ctx.ReplyEmbedCustom(mod.config.Formatter.Notice(help))
}
