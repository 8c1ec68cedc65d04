package bot

import (
	"testing"

	"github.com/eientei/likebot/internal/config"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordModule struct {
	initialized int
	shutdown    int
}

func (mod *recordModule) Initialize(config *Configuration) error {
	mod.initialized++

	config.Router.On("test", "ping", "replies pong", nil)

	return nil
}

func (mod *recordModule) Configure(*Configuration, *discordgo.Guild) {}

func (mod *recordModule) Shutdown(*Configuration) {
	mod.shutdown++
}

func TestEvalPermissions(t *testing.T) {
	for _, tt := range []struct {
		name        string
		role        *discordgo.Role
		permissions int64
		expected    bool
	}{
		{"nil role", nil, discordgo.PermissionAdministrator, false},
		{"administrator", &discordgo.Role{Permissions: discordgo.PermissionAdministrator}, discordgo.PermissionAdministrator, true},
		{"administrator satisfies any", &discordgo.Role{Permissions: discordgo.PermissionAdministrator}, discordgo.PermissionManageChannels, true},
		{"matching bit", &discordgo.Role{Permissions: discordgo.PermissionManageChannels}, discordgo.PermissionManageChannels, true},
		{"missing bit", &discordgo.Role{Permissions: discordgo.PermissionManageChannels}, discordgo.PermissionAdministrator, false},
		{"no requirement", &discordgo.Role{Permissions: discordgo.PermissionSendMessages}, 0, false},
	} {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, evalPermissions(tt.role, tt.permissions))
		})
	}
}

func TestHasPermissionDirectMessage(t *testing.T) {
	log, _ := test.NewNullLogger()

	b, err := NewBot(Options{Log: log})
	require.NoError(t, err)

	assert.False(t, b.HasPermission(&discordgo.Message{Author: &discordgo.User{ID: "1"}}, discordgo.PermissionAdministrator))
}

func TestPrefix(t *testing.T) {
	log, _ := test.NewNullLogger()

	b, err := NewBot(Options{
		Log: log,
		Config: &config.Root{
			Servers: []config.Server{
				{GuildID: "100", Prefix: "?"},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "?", b.Prefix("100"))
	assert.Equal(t, config.DefaultPrefix, b.Prefix("200"))
	assert.Equal(t, config.DefaultPrefix, b.Prefix(""))
}

func TestModulesLifecycle(t *testing.T) {
	log, _ := test.NewNullLogger()
	mod := &recordModule{}

	b, err := NewBot(Options{Log: log, Modules: []Module{mod}})
	require.NoError(t, err)

	assert.Equal(t, 1, mod.initialized)
	assert.NotNil(t, b.Router.Match("ping"))

	b.Shutdown()

	assert.Equal(t, 1, mod.shutdown)
}
