package freefire

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// MinUIDLength is minimal accepted length of player UID
const MinUIDLength = 6

// ErrInvalidUID is returned for UIDs that are not at least MinUIDLength decimal digits
var ErrInvalidUID = errors.New("invalid UID, it must contain only numbers and be at least 6 characters long")

// OutcomeKind enumerates results of like request
type OutcomeKind int

// Known outcome kinds
const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeInvalidInput
	OutcomeAlreadyMaxed
	OutcomeNotFound
	OutcomeUpstreamError
	OutcomeTimeout
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeAlreadyMaxed:
		return "already_maxed"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeUpstreamError:
		return "upstream_error"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// LikeResult describes successful like delivery
type LikeResult struct {
	Nickname string
	Region   string
	Added    int64
	Before   Count
	After    Count
}

// LikeOutcome is classified result of one like request
type LikeOutcome struct {
	// Result is set for OutcomeSuccess only
	Result *LikeResult
	// Err carries underlying failure for logging, never shown to users
	Err  error
	Kind OutcomeKind
	// StatusCode is set for OutcomeUpstreamError, zero for transport failures
	StatusCode int
}

type likeResponse struct {
	Status     likeStatus `json:"status"`
	LikesAdded Count      `json:"likes_added"`
	Before     Count      `json:"likes_before"`
	After      Count      `json:"likes_after"`
	Nickname   Text       `json:"nickname"`
	Region     Text       `json:"region"`
}

// likeStatus is upstream success flag, only JSON integer literal 1 means likes were sent
type likeStatus struct {
	value int64
	known bool
}

// UnmarshalJSON implementation, never fails
func (s *likeStatus) UnmarshalJSON(bs []byte) error {
	*s = likeStatus{}

	bs = bytes.TrimSpace(bs)
	if len(bs) == 0 || (bs[0] != '-' && (bs[0] < '0' || bs[0] > '9')) {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(bs, &n); err != nil {
		return nil
	}

	if v, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*s = likeStatus{value: v, known: true}
	}

	return nil
}

func (s likeStatus) sent() bool {
	return s.known && s.value == 1
}

// ValidateUID checks uid is non-empty, decimal and long enough
func ValidateUID(uid string) error {
	if len(uid) < MinUIDLength {
		return ErrInvalidUID
	}

	for _, r := range uid {
		if r < '0' || r > '9' {
			return ErrInvalidUID
		}
	}

	return nil
}

// SendLike asks upstream to send likes to player uid. It never returns an error,
// every failure is folded into returned outcome.
func (client *Client) SendLike(ctx context.Context, uid string) LikeOutcome {
	if err := ValidateUID(uid); err != nil {
		return LikeOutcome{Kind: OutcomeInvalidInput, Err: err}
	}

	uri, err := endpoint(client.LikeURI, "like", url.Values{"uid": {uid}})
	if err != nil {
		return classifyLike(0, nil, err)
	}

	status, body, err := client.get(ctx, uri, maxBodySize)

	outcome := classifyLike(status, body, err)

	if outcome.Kind == OutcomeUpstreamError {
		client.Log.WithError(outcome.Err).
			WithField("status", status).
			WithField("uid", uid).
			WithField("body", snippet(body)).
			Warn("Like API error")
	}

	return outcome
}

// classifyLike is the only producer of LikeOutcome for performed requests
func classifyLike(status int, body []byte, err error) LikeOutcome {
	if err != nil {
		if isTimeout(err) {
			return LikeOutcome{Kind: OutcomeTimeout, Err: err}
		}

		return LikeOutcome{Kind: OutcomeUpstreamError, StatusCode: status, Err: err}
	}

	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return LikeOutcome{Kind: OutcomeNotFound}
	default:
		return LikeOutcome{
			Kind:       OutcomeUpstreamError,
			StatusCode: status,
			Err:        errors.Errorf("unexpected status %d", status),
		}
	}

	var resp likeResponse

	err = json.Unmarshal(body, &resp)
	if err != nil {
		return LikeOutcome{
			Kind:       OutcomeUpstreamError,
			StatusCode: status,
			Err:        errors.Wrap(err, "decoding like response"),
		}
	}

	if !resp.Status.sent() {
		return LikeOutcome{Kind: OutcomeAlreadyMaxed}
	}

	return LikeOutcome{
		Kind: OutcomeSuccess,
		Result: &LikeResult{
			Nickname: resp.Nickname.Or(Unknown),
			Region:   resp.Region.Or(Unknown),
			Added:    resp.LikesAdded.Or(0),
			Before:   resp.Before,
			After:    resp.After,
		},
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var ne net.Error

	return errors.As(err, &ne) && ne.Timeout()
}

func snippet(body []byte) string {
	const max = 512

	if len(body) > max {
		return string(body[:max]) + "..."
	}

	return string(body)
}
