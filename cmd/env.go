package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imhonza/cranky-language-tutor/internal/config"
	"github.com/imhonza/cranky-language-tutor/internal/leitner"
	"github.com/imhonza/cranky-language-tutor/internal/llm"
	"github.com/imhonza/cranky-language-tutor/internal/phrasegen"
	"github.com/imhonza/cranky-language-tutor/internal/store"
)

// env is what every command runs against: resolved config, an open store
// and a logger.
type env struct {
	cfg     *config.Config
	store   *store.Store
	logger  *slog.Logger
	dbPath  string
	logFile *os.File
}

// openEnv loads config and opens the store. With quiet set, logs go to a
// file next to the database so they don't tear the TUI.
func openEnv(cmd *cobra.Command, quiet bool) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	e := &env{cfg: cfg, dbPath: dbPath}
	if err := e.setupLogger(cmd, quiet); err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		e.close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	e.store = st
	e.logger.Debug("environment ready", "db", dbPath, "config", cfg.File)
	return e, nil
}

func (e *env) setupLogger(cmd *cobra.Command, quiet bool) error {
	levelName, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", levelName, err)
	}

	var w io.Writer = os.Stderr
	if quiet {
		f, err := os.OpenFile(filepath.Join(filepath.Dir(e.dbPath), "cranky.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			w = io.Discard
		} else {
			e.logFile = f
			w = f
		}
	}
	e.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(e.logger)
	return nil
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CRANKY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, os.MkdirAll(filepath.Dir(p), 0o755)
	}
	return store.DefaultDBPath()
}

// llmConfig picks the provider: explicit CRANKY_* settings first, then any
// vendor API key found in the environment.
func llmConfig() (llm.Config, error) {
	cfg := llm.ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if os.Getenv("CRANKY_LLM_PROVIDER") == "" {
		if found, ok := llm.DiscoverConfig(); ok {
			return found, nil
		}
	}
	return cfg, err
}

// provider builds the LLM provider, or returns an error when none is
// configured.
func (e *env) provider(ctx context.Context) (llm.Provider, error) {
	cfg, err := llmConfig()
	if err != nil {
		return nil, err
	}
	cfg.RateLimit.PerMinute = e.cfg.Generation.RatePerMinute
	return llm.NewProvider(ctx, cfg, e.store.EventRepo(), e.logger)
}

// pool wires the scheduler pool. Without an LLM the tutor still runs on
// the learner's own phrases.
func (e *env) pool(ctx context.Context) *leitner.Pool {
	opts := leitner.Options{
		Capacity:          leitner.Capacity{Min: e.cfg.Capacity.Min, Max: e.cfg.Capacity.Max},
		ReviewProbability: e.cfg.ReviewProbability,
		Repository:        e.store.PhraseRepo(),
		Events:            e.store.EventRepo(),
		Logger:            e.logger,
	}

	provider, err := e.provider(ctx)
	if err != nil {
		e.logger.Warn("LLM provider not configured, phrase generation disabled", "err", err)
	} else {
		genCfg := phrasegen.DefaultConfig()
		genCfg.Level = e.cfg.DefaultLevel
		genCfg.BaseLanguage = e.cfg.BaseLanguage
		genCfg.MaxWords = e.cfg.Generation.MaxWords
		opts.Generator = phrasegen.New(provider, genCfg, e.logger)
		opts.Translator = phrasegen.NewTranslator(provider, genCfg)
	}

	return leitner.NewPool(opts, e.store.LearnerRepo(), e.cfg.AllowedLearners)
}

// learnerName resolves --learner, falling back to the only registered
// learner.
func (e *env) learnerName(ctx context.Context, cmd *cobra.Command) (string, error) {
	if name, _ := cmd.Flags().GetString("learner"); strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name), nil
	}
	learners, err := e.store.LearnerRepo().List(ctx)
	if err != nil {
		return "", fmt.Errorf("list learners: %w", err)
	}
	switch len(learners) {
	case 0:
		return "", fmt.Errorf("no learners yet, register one with: cranky learner add <name>")
	case 1:
		return learners[0].Name, nil
	default:
		return "", fmt.Errorf("%d learners registered, pick one with --learner", len(learners))
	}
}

// tutor returns the scheduler for the selected learner.
func (e *env) tutor(ctx context.Context, cmd *cobra.Command) (*leitner.Scheduler, error) {
	name, err := e.learnerName(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return e.pool(ctx).Get(ctx, name)
}
