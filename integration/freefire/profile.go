package freefire

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Identity is account reference resolved from UID or tag
type Identity struct {
	UID    string
	Region string
}

// Profile is player information with every field defaulted
type Profile struct {
	UID      string
	Region   string
	Nickname string
	Country  string
	Created  Moment
	Level    int64
	Likes    int64
}

type identityResponse struct {
	UID    Text `json:"uid"`
	Region Text `json:"region"`
}

type playerResponse struct {
	Data *struct {
		Player *struct {
			Account struct {
				Nickname Text   `json:"nickname"`
				Country  Text   `json:"country"`
				Created  Moment `json:"createdAt"`
			} `json:"account"`
			Level Count `json:"level"`
			Likes Count `json:"likes"`
		} `json:"player"`
	} `json:"data"`
}

// Resolve maps numeric UID or short alphanumeric tag to account identity.
// Any failure is reported as ErrNotFound, successful resolutions are cached.
func (client *Client) Resolve(ctx context.Context, data string) (*Identity, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, ErrNotFound
	}

	if v, ok := client.identities.Get(data); ok {
		id := v.(Identity)

		return &id, nil
	}

	uri, err := endpoint(client.ResolveURI, "", url.Values{"data": {data}})
	if err != nil {
		return nil, err
	}

	status, body, err := client.get(ctx, uri, maxBodySize)
	if err != nil {
		client.Log.WithError(err).WithField("data", data).Warn("Resolving identity")

		return nil, ErrNotFound
	}

	if status != http.StatusOK {
		client.Log.WithField("status", status).WithField("data", data).Debug("Identity not resolved")

		return nil, ErrNotFound
	}

	var resp identityResponse

	err = json.Unmarshal(body, &resp)
	if err != nil || resp.UID == "" {
		return nil, ErrNotFound
	}

	id := Identity{
		UID:    string(resp.UID),
		Region: string(resp.Region),
	}

	client.identities.SetDefault(data, id)

	return &id, nil
}

// Player fetches player data for resolved identity
func (client *Client) Player(ctx context.Context, id *Identity) (*Profile, error) {
	uri, err := endpoint(client.ProfileURI, "", url.Values{
		"uid":    {id.UID},
		"region": {id.Region},
	})
	if err != nil {
		return nil, err
	}

	status, body, err := client.get(ctx, uri, maxBodySize)
	if err != nil {
		return nil, errors.Wrap(ErrProfileUnavailable, err.Error())
	}

	if status != http.StatusOK {
		return nil, errors.Wrapf(ErrProfileUnavailable, "status %d", status)
	}

	var resp playerResponse

	err = json.Unmarshal(body, &resp)
	if err != nil {
		return nil, errors.Wrap(ErrProfileUnavailable, err.Error())
	}

	if resp.Data == nil || resp.Data.Player == nil {
		return nil, errors.Wrap(ErrProfileUnavailable, "no player in response")
	}

	p := resp.Data.Player

	return &Profile{
		UID:      id.UID,
		Region:   Text(strings.ToUpper(id.Region)).Or(Unknown),
		Nickname: p.Account.Nickname.Or(Unknown),
		Country:  p.Account.Country.Or(Unknown),
		Created:  p.Account.Created,
		Level:    p.Level.Or(0),
		Likes:    p.Likes.Or(0),
	}, nil
}

// LookupProfile resolves data and fetches player profile
func (client *Client) LookupProfile(ctx context.Context, data string) (*Profile, error) {
	id, err := client.Resolve(ctx, data)
	if err != nil {
		return nil, err
	}

	return client.Player(ctx, id)
}

// Image fetches rendered outfit image for uid
func (client *Client) Image(ctx context.Context, uid string) ([]byte, error) {
	uri, err := endpoint(client.ImageURI, "", url.Values{"uid": {uid}})
	if err != nil {
		return nil, err
	}

	status, body, err := client.get(ctx, uri, maxImageSize)
	if err != nil {
		return nil, errors.Wrap(err, "fetching image")
	}

	if status != http.StatusOK {
		return nil, errors.Errorf("fetching image: status %d", status)
	}

	if len(body) == 0 {
		return nil, errors.New("fetching image: empty body")
	}

	return body, nil
}
