package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"github.com/spigell/talentscout/internal/ai"
	"github.com/spigell/talentscout/internal/ai/gemini"
	"github.com/spigell/talentscout/internal/ai/openrouter"
	"github.com/spigell/talentscout/internal/logger"
	"github.com/spigell/talentscout/internal/secrets"
	"github.com/spigell/talentscout/internal/storage"
	"go.uber.org/zap"
)

const (
	providerOpenRouter = "openrouter"
	providerGemini     = "gemini"
	providerNone       = "none"
)

// newCompleter builds the configured provider. Missing credentials are not an
// error: the returned completer fails with ai.KindAuth and the session falls
// back to local output.
func newCompleter(ctx context.Context, cfg AIConfig, log *zap.Logger) (ai.Completer, error) {
	switch cfg.Provider {
	case providerNone:
		return ai.Disabled{Reason: "provider disabled by configuration"}, nil
	case providerOpenRouter, "":
		key, err := loadKey("openrouter api key", cfg.OpenRouter, "OPENROUTER_API_KEY", log)
		if err != nil {
			return nil, err
		}
		return openrouter.New(openrouter.Config{
			APIKey:       key,
			Model:        cfg.OpenRouter.Model,
			BaseURL:      cfg.OpenRouter.BaseURL,
			Temperature:  cfg.Temperature,
			MaxTokens:    cfg.MaxTokens,
			Timeout:      cfg.Timeout,
			MaxLogLength: cfg.MaxLogLength,
		}, logger.WithCommonFields(log, providerOpenRouter, cfg.OpenRouter.Model)), nil
	case providerGemini:
		key, err := loadKey("gemini api key", cfg.Gemini, "GEMINI_API_KEY", log)
		if err != nil {
			return nil, err
		}
		generator, err := gemini.NewGenerator(ctx, gemini.Config{
			APIKey:       key,
			Model:        cfg.Gemini.Model,
			Temperature:  cfg.Temperature,
			MaxTokens:    cfg.MaxTokens,
			Timeout:      cfg.Timeout,
			MaxLogLength: cfg.MaxLogLength,
		}, logger.WithCommonFields(log, providerGemini, cfg.Gemini.Model))
		if err != nil {
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		return generator, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func loadKey(name string, cfg ProviderConfig, env string, log *zap.Logger) (string, error) {
	key, err := secrets.Load(secrets.Source{
		Name:  name,
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   env,
	})
	if errors.Is(err, secrets.ErrNotConfigured) {
		log.Info("no provider credentials, questions will come from the local generator",
			zap.String("hint", fmt.Sprintf("set %s or the api-key-file setting", env)),
		)
		return "", nil
	}
	return key, err
}

func newSink(cfg storage.Config, log *zap.Logger) (storage.Sink, error) {
	sink, err := storage.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	return sink, nil
}

func newLogger() (*zap.Logger, error) {
	return logger.New(logger.Options{
		JSON:       viper.GetBool("json"),
		Debug:      viper.GetBool("debug"),
		File:       viper.GetString("log.file"),
		MaxSizeMB:  viper.GetInt("log.max-size-mb"),
		MaxBackups: viper.GetInt("log.max-backups"),
	})
}
