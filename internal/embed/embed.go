// Package embed renders command outcomes as discord messages
package embed

import (
	"fmt"
	"strings"
	"time"

	"github.com/eientei/likebot/integration/freefire"
	"github.com/eientei/likebot/internal/config"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Formatter holds reply style
type Formatter struct {
	Footer  string
	Invite  string
	Success int
	Failure int
	Warning int
	Info    int
}

// New parses style colors into formatter
func New(style config.Style) (*Formatter, error) {
	f := &Formatter{
		Footer: style.Footer,
		Invite: style.Invite,
	}

	for _, c := range []struct {
		dst *int
		hex string
	}{
		{&f.Success, style.Colors.Success},
		{&f.Failure, style.Colors.Failure},
		{&f.Warning, style.Colors.Warning},
		{&f.Info, style.Colors.Info},
	} {
		v, err := parseColor(c.hex)
		if err != nil {
			return nil, err
		}

		*c.dst = v
	}

	return f, nil
}

func parseColor(hex string) (int, error) {
	if hex == "" {
		return 0, nil
	}

	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing color %q", hex)
	}

	r, g, b := c.RGB255()

	return int(r)<<16 | int(g)<<8 | int(b), nil
}

// Mention formats channel mention
func Mention(channelID string) string {
	return "<#" + channelID + ">"
}

// Mentions formats channel mentions joined by sep
func Mentions(channelIDs []string, sep string) string {
	ms := make([]string, 0, len(channelIDs))

	for _, id := range channelIDs {
		ms = append(ms, Mention(id))
	}

	return strings.Join(ms, sep)
}

func timestamp(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}

func (f *Formatter) footer() *discordgo.MessageEmbedFooter {
	if f.Footer == "" {
		return nil
	}

	return &discordgo.MessageEmbedFooter{Text: f.Footer}
}

// Error renders generic error embed
func (f *Formatter) Error(title, desc string, now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "❌ " + title,
		Description: desc,
		Color:       f.Failure,
		Timestamp:   timestamp(now),
		Footer:      &discordgo.MessageEmbedFooter{Text: "An error occurred."},
	}
}

// Critical renders apology for unexpected failures
func (f *Formatter) Critical(now time.Time) *discordgo.MessageEmbed {
	return f.Error("Critical Error", "An unexpected error occurred. Please try again later.", now)
}

// Notice renders plain informational embed
func (f *Formatter) Notice(desc string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Description: desc,
		Color:       f.Info,
	}
}

func count(v int64) string {
	return humanize.Comma(v)
}

func fmtCount(known bool, v int64) string {
	if !known {
		return freefire.NotAvailable
	}

	return count(v)
}

// Cooldown message for user still within cooldown window
func Cooldown(remaining int) string {
	return fmt.Sprintf("Please wait %d seconds before using this command again.", remaining)
}

// AccessDenied message listing allowed channels
func AccessDenied(allowed []string) string {
	if len(allowed) == 0 {
		return "🚫 This command is **not allowed** in this channel and no allowed channels are configured."
	}

	return "🚫 This command is **not allowed** in this channel.\n✅ You can use it in: " + Mentions(allowed, ", ")
}
