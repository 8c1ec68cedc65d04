// Package config with configuration models and utilities
package config

import (
	"io"
	"time"

	"github.com/kelseyhightower/envconfig"
	yaml "gopkg.in/yaml.v2"
)

// Defaults
const (
	DefaultPrefix   = "!"
	DefaultData     = "like_channels.json"
	DefaultCooldown = 30 * time.Second
	DefaultTimeout  = 10 * time.Second
	DefaultAPIHost  = "free-fire-like1.p.rapidapi.com"
)

// Env holds values overridable from environment
type Env struct {
	Token  string `envconfig:"DISCORD_TOKEN"`
	APIKey string `envconfig:"RAPIDAPI_KEY"`
}

// Read reads configuration
func Read(reader io.Reader) (root *Root, err error) {
	root = &Root{}

	err = yaml.NewDecoder(reader).Decode(root)
	if err == io.EOF {
		err = nil
	}

	if err != nil {
		return nil, err
	}

	root.applyDefaults()

	return root, nil
}

// Write writes configuration
func Write(writer io.Writer, root *Root) (err error) {
	err = yaml.NewEncoder(writer).Encode(root)

	return
}

// ApplyEnv overrides secrets from LIKEBOT_DISCORD_TOKEN and LIKEBOT_RAPIDAPI_KEY,
// falling back to unprefixed DISCORD_TOKEN and RAPIDAPI_KEY
func (root *Root) ApplyEnv() error {
	var env Env

	err := envconfig.Process("likebot", &env)
	if err != nil {
		return err
	}

	if env.Token != "" {
		root.Private.Token = env.Token
	}

	if env.APIKey != "" {
		root.Freefire.APIKey = env.APIKey
	}

	return nil
}

// ServerPrefix returns command prefix configured for guild
func (root *Root) ServerPrefix(guildID string) string {
	for _, s := range root.Servers {
		if s.GuildID == guildID && s.Prefix != "" {
			return s.Prefix
		}
	}

	return root.Private.Prefix
}

func (root *Root) applyDefaults() {
	if root.Private.Prefix == "" {
		root.Private.Prefix = DefaultPrefix
	}

	if root.Private.Data == "" {
		root.Private.Data = DefaultData
	}

	if root.Private.Cooldown <= 0 {
		root.Private.Cooldown = DefaultCooldown
	}

	if root.Freefire.Timeout <= 0 {
		root.Freefire.Timeout = DefaultTimeout
	}

	if root.Freefire.APIHost == "" {
		root.Freefire.APIHost = DefaultAPIHost
	}

	if root.Style.Colors.Success == "" {
		root.Style.Colors.Success = "#2ecc71"
	}

	if root.Style.Colors.Failure == "" {
		root.Style.Colors.Failure = "#e74c3c"
	}

	if root.Style.Colors.Warning == "" {
		root.Style.Colors.Warning = "#f39c12"
	}

	if root.Style.Colors.Info == "" {
		root.Style.Colors.Info = "#9b59b6"
	}
}
