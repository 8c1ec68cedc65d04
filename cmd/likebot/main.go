package main

import (
	"os"

	"github.com/eientei/likebot/integration/freefire"
	"github.com/eientei/likebot/internal/bot"
	"github.com/eientei/likebot/internal/channels"
	yamlConfig "github.com/eientei/likebot/internal/config"
	"github.com/eientei/likebot/internal/embed"
	"github.com/eientei/likebot/internal/modules/auth"
	"github.com/eientei/likebot/internal/modules/help"
	"github.com/eientei/likebot/internal/modules/info"
	"github.com/eientei/likebot/internal/modules/like"
	"github.com/eientei/likebot/internal/modules/reply"

	"github.com/bwmarrin/discordgo"
	flags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

var opts struct {
	Config  string `short:"c" long:"config" default:"config.yml" description:"Configuration file"`
	Data    string `short:"d" long:"data" description:"Like channels file (like_channels.json)"`
	Verbose bool   `short:"v" long:"verbose" description:"Debug logging"`
}

func readConfig(log *logrus.Logger, configPath string) *yamlConfig.Root {
	configFile, err := os.OpenFile(configPath, os.O_CREATE|os.O_RDONLY, 0600)
	if err != nil {
		log.Fatal(err)
	}

	c, err := yamlConfig.Read(configFile)
	if err != nil {
		log.Fatal(err)
	}

	info, err := configFile.Stat()
	if err != nil {
		log.Fatal(err)
	}

	err = configFile.Close()
	if err != nil {
		log.Fatal(err)
	}

	if info.Size() == 0 {
		writeConfig(log, configPath, c)
	}

	err = c.ApplyEnv()
	if err != nil {
		log.Fatal(err)
	}

	return c
}

// writeConfig fills freshly created config file with defaults
func writeConfig(log *logrus.Logger, configPath string, c *yamlConfig.Root) {
	configFile, err := os.OpenFile(configPath, os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		log.WithError(err).Warn("Opening config for writing defaults")

		return
	}

	err = yamlConfig.Write(configFile, c)
	if err != nil {
		log.WithError(err).Warn("Writing default config")
	}

	err = configFile.Close()
	if err != nil {
		log.WithError(err).Warn("Closing config")

		return
	}

	log.WithField("config", configPath).Info("Wrote default config")
}

func setLevel(log *logrus.Logger, configRoot *yamlConfig.Root) {
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)

		return
	}

	if configRoot.Private.LogLevel == "" {
		return
	}

	level, err := logrus.ParseLevel(configRoot.Private.LogLevel)
	if err != nil {
		log.WithError(err).Warn("Invalid log level, keeping ", log.GetLevel())

		return
	}

	log.SetLevel(level)
}

func main() {
	log := logrus.New()

	_, err := flags.Parse(&opts)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}

		os.Exit(1)
	}

	configRoot := readConfig(log, opts.Config)

	setLevel(log, configRoot)

	if opts.Data != "" {
		configRoot.Private.Data = opts.Data
	}

	if configRoot.Private.Token == "" {
		log.Fatal("Missing token in config")
	}

	if configRoot.Freefire.APIKey == "" {
		log.Warn("Missing freefire api key, upstream requests are sent without credentials")
	}

	err = run(log, configRoot)
	if err != nil {
		log.Fatal(err)
	}
}

// run wires bot and blocks until it exits, releasing upstream client on every path
func run(log *logrus.Logger, configRoot *yamlConfig.Root) error {
	dg, err := discordgo.New("Bot " + configRoot.Private.Token)
	if err != nil {
		return err
	}

	dg.Identify.Intents = discordgo.MakeIntent(
		discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages,
	)

	store, err := channels.Open(configRoot.Private.Data, log)
	if err != nil {
		return err
	}

	log.WithField("data", store.Path()).Info("Loaded like channels")

	client := freefire.New(&freefire.Config{
		Log:        log,
		LikeURI:    configRoot.Freefire.LikeURI,
		ResolveURI: configRoot.Freefire.ResolveURI,
		ProfileURI: configRoot.Freefire.ProfileURI,
		ImageURI:   configRoot.Freefire.ImageURI,
		APIKey:     configRoot.Freefire.APIKey,
		APIHost:    configRoot.Freefire.APIHost,
		Timeout:    configRoot.Freefire.Timeout,
		Rate:       configRoot.Freefire.Rate,
		Burst:      configRoot.Freefire.Burst,
	})
	defer client.Close()

	formatter, err := embed.New(configRoot.Style)
	if err != nil {
		return err
	}

	b, err := bot.NewBot(bot.Options{
		Discord:   dg,
		Config:    configRoot,
		Log:       log,
		Channels:  store,
		Freefire:  client,
		Formatter: formatter,
		Modules: []bot.Module{
			reply.New(),
			auth.New(),
			help.New(),
			like.New(),
			info.New(),
		},
	})
	if err != nil {
		return err
	}

	return b.Serve()
}
