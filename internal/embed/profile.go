package embed

import (
	"fmt"
	"strconv"

	"github.com/eientei/likebot/integration/freefire"

	"github.com/bwmarrin/discordgo"
)

// Profile renders player card
func (f *Formatter) Profile(p *freefire.Profile) *discordgo.MessageEmbed {
	field := func(name, value string) *discordgo.MessageEmbedField {
		return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true}
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s (%s)", p.Nickname, p.Region),
		Color: f.Info,
		Fields: []*discordgo.MessageEmbedField{
			field("🆔 UID", p.UID),
			field("📍 Region", p.Region),
			field("🏅 Level", strconv.FormatInt(p.Level, 10)),
			field("❤ Likes", count(p.Likes)),
			field("🌎 Country", p.Country),
			field("📅 Created", p.Created.String()),
		},
		Footer: f.footer(),
	}
}

// ProfileImage attaches image to profile embed
func ProfileImage(e *discordgo.MessageEmbed, filename string) {
	e.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + filename}
}
