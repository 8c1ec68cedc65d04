package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
private:
  token: abc
  prefix: "?"
  cooldown: 45s
servers:
  - id: "100"
    prefix: "$"
freefire:
  like_uri: https://like.example
  timeout: 3s
  rate: 2.5
style:
  footer: likebot
`

func TestReadDefaults(t *testing.T) {
	root, err := Read(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, DefaultPrefix, root.Private.Prefix)
	assert.Equal(t, DefaultData, root.Private.Data)
	assert.Equal(t, DefaultCooldown, root.Private.Cooldown)
	assert.Equal(t, DefaultTimeout, root.Freefire.Timeout)
	assert.Equal(t, DefaultAPIHost, root.Freefire.APIHost)
	assert.NotEmpty(t, root.Style.Colors.Success)
}

func TestReadValues(t *testing.T) {
	root, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "abc", root.Private.Token)
	assert.Equal(t, 45*time.Second, root.Private.Cooldown)
	assert.Equal(t, 3*time.Second, root.Freefire.Timeout)
	assert.Equal(t, 2.5, root.Freefire.Rate)
	assert.Equal(t, "https://like.example", root.Freefire.LikeURI)
	assert.Equal(t, "likebot", root.Style.Footer)

	assert.Equal(t, "$", root.ServerPrefix("100"))
	assert.Equal(t, "?", root.ServerPrefix("200"))
}

func TestRoundTrip(t *testing.T) {
	root, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, root))

	again, err := Read(buf)
	require.NoError(t, err)

	assert.Equal(t, root, again)
}

func TestReadInvalid(t *testing.T) {
	_, err := Read(strings.NewReader("private: [1, 2"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LIKEBOT_DISCORD_TOKEN", "from-env")
	t.Setenv("RAPIDAPI_KEY", "key-from-env")

	root, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	require.NoError(t, root.ApplyEnv())

	assert.Equal(t, "from-env", root.Private.Token)
	assert.Equal(t, "key-from-env", root.Freefire.APIKey)
}

func TestApplyEnvKeepsFileValues(t *testing.T) {
	t.Setenv("LIKEBOT_DISCORD_TOKEN", "")
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("LIKEBOT_RAPIDAPI_KEY", "")
	t.Setenv("RAPIDAPI_KEY", "")

	root, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	require.NoError(t, root.ApplyEnv())

	assert.Equal(t, "abc", root.Private.Token)
	assert.Empty(t, root.Freefire.APIKey)
}
