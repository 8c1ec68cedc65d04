// Package likes wires channel gate, cooldown and upstream client into like command pipeline
package likes

import (
	"context"
	"fmt"
	"time"

	"github.com/eientei/likebot/integration/freefire"
	"github.com/eientei/likebot/internal/cooldown"
)

// Gate decides whether like may run in channel and lists allowed channels
type Gate interface {
	Allowed(guildID, channelID string) bool
	List(guildID string) (channels []string, restricted bool)
}

// Sender delivers likes upstream
type Sender interface {
	SendLike(ctx context.Context, uid string) freefire.LikeOutcome
}

// AccessDeniedError is returned when like is invoked outside allowed channels
type AccessDeniedError struct {
	Allowed []string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("command not allowed in this channel, allowed channels: %v", e.Allowed)
}

// CooldownError is returned when user invokes like again before cooldown expires
type CooldownError struct {
	Remaining int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active, %d seconds remaining", e.Remaining)
}

// Request of single like invocation
type Request struct {
	GuildID   string
	ChannelID string
	UserID    string
	UID       string
}

// Service owns like pipeline state
type Service struct {
	Gate     Gate
	Cooldown *cooldown.Table
	Sender   Sender
	Now      func() time.Time
}

// New returns like service
func New(gate Gate, table *cooldown.Table, sender Sender) *Service {
	return &Service{
		Gate:     gate,
		Cooldown: table,
		Sender:   sender,
		Now:      time.Now,
	}
}

// Like runs channel gate, then cooldown, then upstream request.
// Gate and cooldown denials are returned as errors, everything past them as outcome.
func (svc *Service) Like(ctx context.Context, req Request) (freefire.LikeOutcome, error) {
	if !svc.Gate.Allowed(req.GuildID, req.ChannelID) {
		allowed, _ := svc.Gate.List(req.GuildID)

		return freefire.LikeOutcome{}, &AccessDeniedError{Allowed: allowed}
	}

	decision := svc.Cooldown.CheckAndRecord(req.UserID, svc.Now())
	if !decision.Allowed {
		return freefire.LikeOutcome{}, &CooldownError{Remaining: decision.Remaining}
	}

	return svc.Sender.SendLike(ctx, req.UID), nil
}
