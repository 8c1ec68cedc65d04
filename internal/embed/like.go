package embed

import (
	"fmt"
	"strings"
	"time"

	"github.com/eientei/likebot/integration/freefire"

	"github.com/bwmarrin/discordgo"
)

const likeTitle = "FREE FIRE LIKE"

// Like renders like outcome for uid
func (f *Formatter) Like(uid string, out freefire.LikeOutcome, now time.Time) *discordgo.MessageEmbed {
	switch out.Kind {
	case freefire.OutcomeSuccess:
		return f.likeSuccess(uid, out.Result, now)
	case freefire.OutcomeAlreadyMaxed:
		return f.withInvite(&discordgo.MessageEmbed{
			Title:       likeTitle,
			Description: "``` MAX LIKES\nThis UID has already received the maximum likes today. ```",
			Color:       f.Failure,
			Timestamp:   timestamp(now),
			Footer:      f.footer(),
		})
	case freefire.OutcomeNotFound:
		return &discordgo.MessageEmbed{
			Title:       "❌ Player Not Found",
			Description: fmt.Sprintf("The UID %s does not exist or is not accessible.", uid),
			Color:       f.Failure,
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:  "Tip",
					Value: "Make sure that:\n- The UID is correct\n- The player is not private",
				},
			},
		}
	case freefire.OutcomeInvalidInput:
		return f.Error("Invalid UID", "Invalid UID. It must contain only numbers and be at least 6 characters long.", now)
	case freefire.OutcomeTimeout:
		return f.Error("Timeout", "The server took too long to respond.", now)
	case freefire.OutcomeUpstreamError:
		return f.Unavailable()
	default:
		return f.Critical(now)
	}
}

// Unavailable renders upstream service failure
func (f *Formatter) Unavailable() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⚠️ Service Unavailable",
		Description: "The Free Fire API is not responding at the moment.",
		Color:       f.Warning,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Solution",
				Value: "Try again in a few minutes.",
			},
		},
	}
}

func (f *Formatter) likeSuccess(uid string, res *freefire.LikeResult, now time.Time) *discordgo.MessageEmbed {
	if res == nil {
		res = &freefire.LikeResult{Nickname: freefire.Unknown, Region: freefire.Unknown}
	}

	buf := &strings.Builder{}

	buf.WriteString("```\n")
	buf.WriteString("┌  ACCOUNT\n")
	fmt.Fprintf(buf, "├─ NICKNAME: %s\n", res.Nickname)
	fmt.Fprintf(buf, "├─ UID: %s\n", uid)
	fmt.Fprintf(buf, "├─ REGION: %s\n", res.Region)
	buf.WriteString("└─ RESULT:\n")
	fmt.Fprintf(buf, "   ├─ ADDED: +%s\n", count(res.Added))
	fmt.Fprintf(buf, "   ├─ BEFORE: %s\n", fmtCount(res.Before.Known, res.Before.Value))
	fmt.Fprintf(buf, "   └─ AFTER: %s\n", fmtCount(res.After.Known, res.After.Value))
	buf.WriteString("```")

	return f.withInvite(&discordgo.MessageEmbed{
		Title:       likeTitle,
		Description: buf.String(),
		Color:       f.Success,
		Timestamp:   timestamp(now),
		Footer:      f.footer(),
	})
}

func (f *Formatter) withInvite(e *discordgo.MessageEmbed) *discordgo.MessageEmbed {
	if f.Invite != "" {
		e.Description += "\n JOIN : " + f.Invite
	}

	return e
}
