package navconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const yamlConfig = `
origin: https://Example.com/app
useHashes: true
trigger: false
pushState: false
replaceErrorHandlers: true
routes:
  - users/:id
  - /files/*path
`

const tomlConfig = `
origin = "https://example.com/app"
useHashes = true
trigger = false
routes = ["/users/:id", "/files/*path"]
`

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "routes.yaml", want: FormatYAML},
		{path: "routes.YML", want: FormatYAML},
		{path: "dir/routes.toml", want: FormatTOML},
		{path: "routes.json", wantErr: true},
		{path: "routes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		cfg, err := Load(writeFile(t, "routes.yaml", yamlConfig))
		require.NoError(t, err)

		assert.Equal(t, "https://Example.com/app", cfg.Origin)
		assert.True(t, cfg.UseHashes)
		require.NotNil(t, cfg.Trigger)
		assert.False(t, *cfg.Trigger)
		require.NotNil(t, cfg.PushState)
		assert.False(t, *cfg.PushState)
		assert.True(t, cfg.ReplaceErrorHandlers)
		assert.Equal(t, []string{"users/:id", "/files/*path"}, cfg.Routes)
	})

	t.Run("toml", func(t *testing.T) {
		cfg, err := Load(writeFile(t, "routes.toml", tomlConfig))
		require.NoError(t, err)

		assert.Equal(t, "https://example.com/app", cfg.Origin)
		assert.True(t, cfg.UseHashes)
		assert.False(t, *cfg.Trigger)
		assert.True(t, *cfg.PushState)
		assert.Equal(t, []string{"/users/:id", "/files/*path"}, cfg.Routes)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeFile(t, "routes.yml", "routes: []\n"))
		require.NoError(t, err)

		assert.Equal(t, "http://localhost/", cfg.Origin)
		assert.False(t, cfg.UseHashes)
		assert.True(t, *cfg.Trigger)
		assert.True(t, *cfg.PushState)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "routes.json", "{}"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "routes.yaml", "routes: [\n"))
		assert.ErrorContains(t, err, "parse yaml")
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := Load(writeFile(t, "routes.toml", "routes = \n"))
		assert.ErrorContains(t, err, "parse toml")
	})
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("NAVKIT_ORIGIN", "https://override.example/")
	t.Setenv("NAVKIT_USE_HASHES", "yes")

	cfg, err := Parse([]byte("origin: https://example.com/\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "https://override.example/", cfg.Origin)
	assert.True(t, cfg.UseHashes)
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{value: "", def: true, want: true},
		{value: "1", want: true},
		{value: "ON", want: true},
		{value: "no", def: true, want: false},
		{value: "off", def: true, want: false},
		{value: "maybe", def: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("NAVKIT_TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, envBool("NAVKIT_TEST_BOOL", tt.def))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "valid",
			config: Config{Origin: "https://example.com/", Routes: []string{"/a", "/b/:id"}},
		},
		{
			name:    "relative origin",
			config:  Config{Origin: "/app"},
			wantErr: "absolute http(s) URL",
		},
		{
			name:    "unsupported scheme",
			config:  Config{Origin: "ftp://example.com/"},
			wantErr: "absolute http(s) URL",
		},
		{
			name:    "empty route",
			config:  Config{Routes: []string{"/a", " "}},
			wantErr: "routes[1] is empty",
		},
		{
			name:    "duplicate route",
			config:  Config{Routes: []string{"users/:id", "/users/:id"}},
			wantErr: "duplicate route",
		},
		{
			name:    "malformed route",
			config:  Config{Routes: []string{"/a)"}},
			wantErr: "routes[0]",
		},
		{
			name:    "duplicated parameter",
			config:  Config{Routes: []string{"/:id/:id"}},
			wantErr: "routes[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfigMapping(t *testing.T) {
	cfg, err := Parse([]byte(yamlConfig), FormatYAML)
	require.NoError(t, err)

	t.Run("base", func(t *testing.T) {
		base, err := cfg.Base()
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/app", base.String())
	})

	t.Run("history", func(t *testing.T) {
		h, err := cfg.History()
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/app", h.Location().String())
		assert.Equal(t, 1, h.Len())
	})

	t.Run("router options", func(t *testing.T) {
		assert.Len(t, cfg.RouterOptions(), 1)
	})

	t.Run("start options", func(t *testing.T) {
		opts := cfg.StartOptions()
		assert.True(t, opts.NoTrigger)
		require.NotNil(t, opts.UseHashes)
		assert.True(t, *opts.UseHashes)
		assert.True(t, opts.ReplaceErrorHandlers)
	})

	t.Run("navigate options", func(t *testing.T) {
		assert.True(t, cfg.NavigateOptions().NoPushState)
	})

	t.Run("empty config", func(t *testing.T) {
		var empty Config
		base, err := empty.Base()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost/", base.String())
		assert.False(t, empty.StartOptions().NoTrigger)
		assert.False(t, empty.NavigateOptions().NoPushState)
	})
}
