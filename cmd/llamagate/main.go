package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"llamagate/internal/config"
	"llamagate/internal/httpapi"
	"llamagate/internal/logging"
	"llamagate/internal/manager"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "llamagate:", err)
		os.Exit(1)
	}
}

type flagValues struct {
	configPath   string
	addr         string
	logLevel     string
	logFormat    string
	httpLogLevel string
	maxAttempts  int
	modelPath    string
	promptTmpl   string
	corsEnabled  bool
	corsOrigins  string
	corsMethods  string
	corsHeaders  string
}

func buildRootCmd() *cobra.Command {
	var fv flagValues
	root := &cobra.Command{
		Use:           "llamagate",
		Short:         "OpenAI-style chat completion gateway for a local llama.cpp model",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, fv)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	defaultAddr := config.DefaultAddr
	if v := os.Getenv("LLAMAGATE_ADDR"); v != "" {
		defaultAddr = v
	}
	f := root.Flags()
	f.StringVar(&fv.configPath, "config", os.Getenv("LLAMAGATE_CONFIG"), "Config file (.yaml, .json or .toml)")
	f.StringVar(&fv.addr, "addr", defaultAddr, "HTTP listen address, e.g. :8080")
	f.StringVar(&fv.logLevel, "log-level", config.DefaultLogLevel, "Log level: trace|debug|info|warn|error")
	f.StringVar(&fv.logFormat, "log-format", config.DefaultLogFormat, "Log format: console|json")
	f.StringVar(&fv.httpLogLevel, "http-log-level", config.DefaultHTTPLogLevel, "Per-request log level: off|error|info|debug")
	f.IntVar(&fv.maxAttempts, "max-attempts", 0, "Generations per chat request before giving up (0 = default)")
	f.StringVar(&fv.modelPath, "model", "", "Model file to load at startup")
	f.StringVar(&fv.promptTmpl, "prompt-template", "", "Prompt template for the startup model, or the /load default when none is set")
	f.BoolVar(&fv.corsEnabled, "cors", false, "Enable CORS")
	f.StringVar(&fv.corsOrigins, "cors-origins", "", "Comma-separated allowed origins")
	f.StringVar(&fv.corsMethods, "cors-methods", "", "Comma-separated allowed methods")
	f.StringVar(&fv.corsHeaders, "cors-headers", "", "Comma-separated allowed headers")
	return root
}

// resolveConfig loads the config file, if any, and applies flags the user set
// explicitly on top of it.
func resolveConfig(cmd *cobra.Command, fv flagValues) (config.Config, error) {
	var cfg config.Config
	if fv.configPath != "" {
		c, err := config.Load(fv.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = c
	}
	changed := cmd.Flags().Changed
	if changed("addr") || cfg.Addr == "" {
		cfg.Addr = fv.addr
	}
	if changed("log-level") {
		cfg.LogLevel = fv.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = fv.logFormat
	}
	if changed("http-log-level") {
		cfg.HTTPLogLevel = fv.httpLogLevel
	}
	if changed("max-attempts") {
		cfg.MaxAttempts = fv.maxAttempts
	}
	if fv.modelPath != "" {
		if cfg.Model == nil {
			cfg.Model = &config.ModelConfig{}
		}
		cfg.Model.Path = fv.modelPath
	}
	if fv.promptTmpl != "" {
		if cfg.Model != nil {
			cfg.Model.Options.PromptTemplate = fv.promptTmpl
		} else {
			cfg.LoadDefaults.PromptTemplate = fv.promptTmpl
		}
	}
	if changed("cors") {
		cfg.CORS.Enabled = fv.corsEnabled
	}
	if v := splitCSV(fv.corsOrigins); v != nil {
		cfg.CORS.Origins = v
	}
	if v := splitCSV(fv.corsMethods); v != nil {
		cfg.CORS.Methods = v
	}
	if v := splitCSV(fv.corsHeaders); v != nil {
		cfg.CORS.Headers = v
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config) error {
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	zerolog.DefaultContextLogger = &log

	httpapi.SetLogger(log)
	httpapi.SetDefaultLogLevel(cfg.HTTPLogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)

	mgr := manager.NewWithConfig(manager.ManagerConfig{
		MaxAttempts:  cfg.MaxAttempts,
		LoadDefaults: cfg.LoadOptions(),
		Sampling:     cfg.SamplingParams(),
		Publisher:    manager.LogPublisher{Logger: log},
		Logger:       &log,
	})
	if rep := mgr.SanityCheck(); !rep.RuntimeAvailable {
		log.Warn().Str("reason", rep.Error).Msg("llama runtime not compiled in; model loads will fail")
	}
	if req := cfg.AutoloadRequest(); req != nil {
		if err := mgr.LoadModel(log.WithContext(ctx), req); err != nil {
			log.Error().Err(err).Str("model_path", req.Path).Msg("startup model load failed")
		} else {
			log.Info().Str("model_path", req.Path).Msg("startup model loaded")
		}
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(mgr), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Strs("templates", mgr.Templates()).Msg("llamagate listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	if _, err := mgr.UnloadModel(context.Background()); err != nil {
		log.Error().Err(err).Msg("unload on shutdown")
	}
	return nil
}

// splitCSV splits a comma-separated list, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
