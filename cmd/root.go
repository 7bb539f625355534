package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/storage"
)

const (
	app       = "talentscout"
	envPrefix = "TALENTSCOUT"
)

type Config struct {
	AI      AIConfig       `mapstructure:"ai"`
	Storage storage.Config `mapstructure:"storage"`
	Log     LogConfig      `mapstructure:"log"`
}

type AIConfig struct {
	Provider     string         `mapstructure:"provider" validate:"oneof=openrouter gemini none"`
	Temperature  float64        `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens    int            `mapstructure:"max-tokens" validate:"gte=0"`
	Timeout      time.Duration  `mapstructure:"timeout" validate:"gte=0"`
	MaxLogLength int            `mapstructure:"max-log-length" validate:"gte=0"`
	OpenRouter   ProviderConfig `mapstructure:"openrouter"`
	Gemini       ProviderConfig `mapstructure:"gemini"`
}

type ProviderConfig struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base-url" validate:"omitempty,url"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max-size-mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max-backups" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string
	envFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "talentscout is an interactive hiring assistant that screens candidates from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talentscout.yaml in current directory)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("provider", "", "model provider: openrouter, gemini or none")
	rootCmd.PersistentFlags().String("storage-driver", "", "where completed sessions go: file, sqlite, postgres, redis or none")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("ai.provider", rootCmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("storage.driver", rootCmd.PersistentFlags().Lookup("storage-driver"))
}

func initConfig() {
	if err := prepareViper(viper.GetViper(), cfgFile, envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// prepareViper loads the dotenv file, wires defaults and environment variables
// and reads the config file. Only an explicitly requested config file must exist.
func prepareViper(v *viper.Viper, configFile, dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", dotenv, err)
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, env := range map[string]string{
		"ai.openrouter.api-key": "OPENROUTER_API_KEY",
		"ai.gemini.api-key":     "GEMINI_API_KEY",
		"storage.dsn":           "DATABASE_URL",
		"storage.redis-url":     "REDIS_URL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s environment variable: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", configFile, err)
		}
		return nil
	}

	v.AddConfigPath(".")
	v.SetConfigName(app)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.provider", "openrouter")
	v.SetDefault("ai.temperature", 0.6)
	v.SetDefault("ai.max-tokens", 900)
	v.SetDefault("ai.timeout", ai.DefaultTimeout)
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("ai.openrouter.model", "meta-llama/llama-3.3-8b-instruct:free")
	v.SetDefault("ai.openrouter.base-url", "https://openrouter.ai/api/v1")
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("storage.driver", storage.DriverFile)
	v.SetDefault("storage.path", storage.DefaultPath)
	v.SetDefault("storage.redis-key", storage.DefaultRedisKey)
	v.SetDefault("log.max-size-mb", 10)
	v.SetDefault("log.max-backups", 3)
}

func loadConfig(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	config.AI.Provider = strings.ToLower(strings.TrimSpace(config.AI.Provider))
	config.Storage.Driver = strings.ToLower(strings.TrimSpace(config.Storage.Driver))

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func getConfig() (*Config, error) {
	return loadConfig(viper.GetViper())
}
