// FILE: lixenwraith/ini/env_test.go
package ini

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const envINI = `debug=false
name="svc"

[server]
host="localhost"
port=8080
`

func TestApplyEnv(t *testing.T) {
	t.Run("DefaultTransform", func(t *testing.T) {
		t.Setenv("APP_SERVER_PORT", "9090")
		t.Setenv("APP_NAME", "from-env")
		t.Setenv("APP_DEBUG", "true")
		t.Setenv("APP_UNKNOWN", "ignored")

		doc, err := LoadString(envINI)
		require.NoError(t, err)
		require.NoError(t, doc.ApplyEnv(DefaultEnvOptions("APP_")))

		assert.Equal(t, 9090, doc.Get("server").MustKey("port").Int(0))
		assert.Equal(t, `"from-env"`, doc.Get("name").Raw(), "text keys stay encoded")
		assert.True(t, doc.Get("debug").Bool(false))
		assert.False(t, doc.Has("unknown"), "only existing keys are overridden")
	})

	t.Run("CustomTransformAndWhitelist", func(t *testing.T) {
		t.Setenv("server-host", "example.com")
		t.Setenv("server-port", "1")

		doc, err := LoadString(envINI)
		require.NoError(t, err)
		require.NoError(t, doc.ApplyEnv(EnvOptions{
			Transform: func(path string) string { return strings.ReplaceAll(path, ".", "-") },
			Whitelist: map[string]bool{"server.host": true},
		}))

		assert.Equal(t, "example.com", doc.Get("server").MustKey("host").Text(""))
		assert.Equal(t, 8080, doc.Get("server").MustKey("port").Int(0))
	})
}

func TestDiscoverAndExportEnv(t *testing.T) {
	t.Setenv("APP_SERVER_HOST", "h")

	doc, err := LoadString(envINI + "empty=\n")
	require.NoError(t, err)

	opts := DefaultEnvOptions("APP_")
	assert.Equal(t, map[string]string{"server.host": "APP_SERVER_HOST"}, doc.DiscoverEnv(opts))

	assert.Equal(t, map[string]string{
		"APP_DEBUG":       "false",
		"APP_NAME":        "svc",
		"APP_SERVER_HOST": "localhost",
		"APP_SERVER_PORT": "8080",
	}, doc.ExportEnv(opts))
}

func TestBuilderEnv(t *testing.T) {
	t.Setenv("MYAPP_SERVER_PORT", "7000")
	t.Setenv("MYAPP_SERVER_HOST", "env-host")

	doc, err := NewBuilder().
		WithDefaults(defaultBuilderConfig()).
		WithEnvPrefix("MYAPP_").
		WithArgs([]string{"--server.port=7500"}).
		Build()
	require.NoError(t, err)

	server := doc.Get("server")
	assert.Equal(t, "env-host", server.MustKey("host").Text(""), "env beats defaults")
	assert.Equal(t, 7500, server.MustKey("port").Int(0), "overrides beat env")
}
