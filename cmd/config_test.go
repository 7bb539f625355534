package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/spigell/talentscout/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	v := viper.New()
	require.NoError(t, prepareViper(v, "", ""))

	config, err := loadConfig(v)
	require.NoError(t, err)
	require.Equal(t, providerOpenRouter, config.AI.Provider)
	require.Equal(t, 0.6, config.AI.Temperature)
	require.Equal(t, 900, config.AI.MaxTokens)
	require.Equal(t, 30*time.Second, config.AI.Timeout)
	require.Equal(t, "meta-llama/llama-3.3-8b-instruct:free", config.AI.OpenRouter.Model)
	require.Equal(t, storage.DriverFile, config.Storage.Driver)
	require.Equal(t, storage.DefaultPath, config.Storage.Path)
}

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "talentscout.yaml"), []byte(`
ai:
  provider: Gemini
  timeout: 5s
  gemini:
    model: gemini-2.0-flash
storage:
  driver: sqlite
  path: screening.db
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0o644))
	t.Setenv("GEMINI_API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")
	t.Setenv("TALENTSCOUT_AI_MAX_TOKENS", "300")

	v := viper.New()
	require.NoError(t, prepareViper(v, "", ".env"))

	config, err := loadConfig(v)
	require.NoError(t, err)
	require.Equal(t, providerGemini, config.AI.Provider)
	require.Equal(t, 5*time.Second, config.AI.Timeout)
	require.Equal(t, 300, config.AI.MaxTokens)
	require.Equal(t, "gemini-2.0-flash", config.AI.Gemini.Model)
	require.Equal(t, "from-dotenv", config.AI.Gemini.APIKey)
	require.Equal(t, storage.DriverSQLite, config.Storage.Driver)
	require.Equal(t, "screening.db", config.Storage.Path)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := map[string]string{
		"ai.provider":    "claude",
		"storage.driver": "mongo",
		"ai.temperature": "3",
		"ai.max-tokens":  "-1",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			v := viper.New()
			require.NoError(t, prepareViper(v, "", ""))
			v.Set(key, value)

			_, err := loadConfig(v)
			require.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestPrepareViperExplicitConfigMustExist(t *testing.T) {
	err := prepareViper(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.ErrorContains(t, err, "reading config")
}
