package likes

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/eientei/likebot/integration/freefire"
	"github.com/eientei/likebot/internal/channels"
	"github.com/eientei/likebot/internal/cooldown"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	uids    []string
	outcome freefire.LikeOutcome
}

func (f *fakeSender) SendLike(ctx context.Context, uid string) freefire.LikeOutcome {
	f.uids = append(f.uids, uid)

	if err := freefire.ValidateUID(uid); err != nil {
		return freefire.LikeOutcome{Kind: freefire.OutcomeInvalidInput, Err: err}
	}

	return f.outcome
}

type fixture struct {
	svc    *Service
	store  *channels.Store
	sender *fakeSender
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log, _ := test.NewNullLogger()

	store, err := channels.Open(filepath.Join(t.TempDir(), "like_channels.json"), log)
	require.NoError(t, err)

	f := &fixture{
		store: store,
		sender: &fakeSender{
			outcome: freefire.LikeOutcome{
				Kind:   freefire.OutcomeSuccess,
				Result: &freefire.LikeResult{Added: 5},
			},
		},
		now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	f.svc = New(store, cooldown.New(30*time.Second), f.sender)
	f.svc.Now = func() time.Time { return f.now }

	return f
}

func TestLikeUnrestricted(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.Like(context.Background(), Request{GuildID: "g", ChannelID: "c", UserID: "u", UID: "123456"})
	require.NoError(t, err)
	assert.Equal(t, freefire.OutcomeSuccess, out.Kind)
	assert.Equal(t, int64(5), out.Result.Added)
	assert.Equal(t, []string{"123456"}, f.sender.uids)
}

func TestLikeAccessDenied(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.Add("g", "allowed1")
	require.NoError(t, err)
	_, err = f.store.Add("g", "allowed2")
	require.NoError(t, err)

	_, err = f.svc.Like(context.Background(), Request{GuildID: "g", ChannelID: "other", UserID: "u", UID: "123456"})

	var denied *AccessDeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, []string{"allowed1", "allowed2"}, denied.Allowed)
	assert.Empty(t, f.sender.uids)

	// denied by gate does not consume cooldown
	_, err = f.svc.Like(context.Background(), Request{GuildID: "g", ChannelID: "allowed1", UserID: "u", UID: "123456"})
	assert.NoError(t, err)
}

func TestLikeDirectMessage(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.Add("g", "allowed")
	require.NoError(t, err)

	_, err = f.svc.Like(context.Background(), Request{ChannelID: "dm", UserID: "u", UID: "123456"})
	assert.NoError(t, err)
}

func TestLikeCooldown(t *testing.T) {
	f := newFixture(t)
	req := Request{GuildID: "g", ChannelID: "c", UserID: "u", UID: "123456"}

	_, err := f.svc.Like(context.Background(), req)
	require.NoError(t, err)

	f.now = f.now.Add(12 * time.Second)

	_, err = f.svc.Like(context.Background(), req)

	var cd *CooldownError
	require.True(t, errors.As(err, &cd))
	assert.Equal(t, 18, cd.Remaining)
	assert.Len(t, f.sender.uids, 1)

	f.now = f.now.Add(18 * time.Second)

	_, err = f.svc.Like(context.Background(), req)
	assert.NoError(t, err)
	assert.Len(t, f.sender.uids, 2)
}

func TestLikeInvalidUIDConsumesCooldown(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.Like(context.Background(), Request{GuildID: "g", ChannelID: "c", UserID: "u", UID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, freefire.OutcomeInvalidInput, out.Kind)

	_, err = f.svc.Like(context.Background(), Request{GuildID: "g", ChannelID: "c", UserID: "u", UID: "123456"})

	var cd *CooldownError
	assert.True(t, errors.As(err, &cd))
}

func TestLikeOutcomePassthrough(t *testing.T) {
	f := newFixture(t)
	f.sender.outcome = freefire.LikeOutcome{Kind: freefire.OutcomeTimeout}

	out, err := f.svc.Like(context.Background(), Request{GuildID: "g", ChannelID: "c", UserID: "u", UID: "123456"})
	require.NoError(t, err)
	assert.Equal(t, freefire.OutcomeTimeout, out.Kind)
}
