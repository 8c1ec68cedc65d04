package config

import (
	"time"
)

// Private part of configuration
type Private struct {
	Token    string        `yaml:"token"`
	Prefix   string        `yaml:"prefix"`
	Data     string        `yaml:"data"`
	LogLevel string        `yaml:"log_level"`
	Cooldown time.Duration `yaml:"cooldown"`
}

// Server specific part of configuration
type Server struct {
	GuildID string `yaml:"id"`
	Prefix  string `yaml:"prefix"`
}

// Freefire upstream API endpoints and credentials
type Freefire struct {
	LikeURI    string        `yaml:"like_uri"`
	ResolveURI string        `yaml:"resolve_uri"`
	ProfileURI string        `yaml:"profile_uri"`
	ImageURI   string        `yaml:"image_uri"`
	APIKey     string        `yaml:"api_key"`
	APIHost    string        `yaml:"api_host"`
	Timeout    time.Duration `yaml:"timeout"`
	Rate       float64       `yaml:"rate"`
	Burst      int           `yaml:"burst"`
}

// Colors of reply embeds, as hex strings
type Colors struct {
	Success string `yaml:"success"`
	Failure string `yaml:"failure"`
	Warning string `yaml:"warning"`
	Info    string `yaml:"info"`
}

// Style of replies
type Style struct {
	Footer string `yaml:"footer"`
	Invite string `yaml:"invite"`
	Colors Colors `yaml:"colors"`
}

// Root of configuration
type Root struct {
	Servers  []Server `yaml:"servers"`
	Private  Private  `yaml:"private"`
	Freefire Freefire `yaml:"freefire"`
	Style    Style    `yaml:"style"`
}
