package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/liscad/liscad/internal/backend"
	"github.com/liscad/liscad/internal/config"
	"github.com/liscad/liscad/internal/generator"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *config.Config
	generator generator.Client
	backend   *backend.Client
}

// Option overrides one of the App's collaborators. This is primarily for
// testing.
type Option func(*App)

// WithGenerator substitutes the DSL-generation client.
func WithGenerator(gen generator.Client) Option {
	return func(a *App) { a.generator = gen }
}

// WithBackend substitutes the drawing execution client.
func WithBackend(client *backend.Client) Option {
	return func(a *App) { a.backend = client }
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and the
// collaborator clients the requested mode needs.
func NewApp(outW io.Writer, appConfig *Config, opts ...Option) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	cfg, err := config.Load()
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded.",
		"generator_url", cfg.Generator.BaseURL,
		"backend_url", cfg.Backend.BaseURL,
	)

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
	for _, opt := range opts {
		opt(a)
	}

	// Generation modes need the generator; file mode does not.
	if a.generator == nil && (appConfig.Requirement != "" || appConfig.SelfTest) {
		if cfg.Generator.APIKey == "" {
			panic(fmt.Errorf("failed to load configuration: ANTHROPIC_API_KEY is not set"))
		}
		a.generator = generator.NewAnthropicClient(generator.AnthropicOptions{
			BaseURL:    cfg.Generator.BaseURL,
			APIKey:     cfg.Generator.APIKey,
			Model:      cfg.Generator.Model,
			Timeout:    cfg.Generator.Timeout,
			MaxRetries: cfg.Generator.MaxRetries,
			MaxTokens:  cfg.Generator.MaxTokens,
		})
		logger.Debug("Generator client ready.", "model", cfg.Generator.Model)
	}

	if a.backend == nil && appConfig.Execute {
		a.backend = backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
		logger.Debug("Backend client ready.", "url", cfg.Backend.BaseURL)
	}

	return a
}

// Config returns the loaded service configuration. This is primarily for
// testing.
func (a *App) Config() *config.Config {
	return a.config
}
