// Command cachectl maintains the persistent translation cache: it applies
// schema migrations, purges expired entries and reports cache statistics.
// It reads the same configuration as the engine (CONFIG_PATH + ENV) and is
// intended to be invoked by an operator or a cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/amistad-translator/internal/app"
	"github.com/heartmarshall/amistad-translator/internal/cache"
	"github.com/heartmarshall/amistad-translator/internal/config"
	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/pkg/engine"
)

var errNoStore = errors.New("the memory cache backend has no persistent store")

func newRootCmd() *cobra.Command {
	var timeout time.Duration

	root := &cobra.Command{
		Use:           "cachectl",
		Short:         "Maintain the persistent translation cache",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Deadline for the whole command")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		cobra.OnFinalize(cancel)
		cmd.SetContext(ctx)
		return nil
	}

	root.AddCommand(
		newMigrateCmd(),
		newPurgeCmd(),
		newStatsCmd(),
		newTranslateCmd(),
		newVersionCmd(),
	)
	return root
}

// withStore loads the config, opens the configured store and hands both to fn.
func withStore(cmd *cobra.Command, fn func(cfg *config.Config, logger *slog.Logger, store cache.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	store, closeStore, err := app.OpenStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close cache store", slog.String("error", err.Error()))
		}
	}()

	return fn(cfg, logger, store)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending cache schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(cfg *config.Config, _ *slog.Logger, store cache.Store) error {
				if store == nil {
					return errNoStore
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s cache schema is up to date\n", cfg.Cache.Backend)
				return nil
			})
		},
	}
}

func newPurgeCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete cache entries older than the TTL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(cfg *config.Config, logger *slog.Logger, store cache.Store) error {
				if store == nil {
					return errNoStore
				}
				ttl := cfg.Cache.TTL
				if olderThan > 0 {
					ttl = olderThan
				}

				deleted, err := cache.New(logger, store, ttl, nil).PurgeExpired(cmd.Context())
				if err != nil {
					return fmt.Errorf("purge: %w", err)
				}

				logger.Info("purge completed", slog.Int64("deleted", deleted), slog.Duration("ttl", ttl))
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d expired entries\n", deleted)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Override the configured TTL")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number of cached translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(cfg *config.Config, _ *slog.Logger, store cache.Store) error {
				if store == nil {
					return errNoStore
				}
				n, err := store.Count(cmd.Context())
				if err != nil {
					return fmt.Errorf("count: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "backend: %s\n", cfg.Cache.Backend)
				fmt.Fprintf(out, "ttl:     %s\n", cfg.Cache.TTL)
				fmt.Fprintf(out, "entries: %d\n", n)
				return nil
			})
		},
	}
}

func newTranslateCmd() *cobra.Command {
	var from, to string
	var word bool

	cmd := &cobra.Command{
		Use:   "translate <text>...",
		Short: "Resolve a translation through the cascade and cache it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := engine.NewFromEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			text := strings.Join(args, " ")
			src, dst := domain.ParseLanguage(from), domain.ParseLanguage(to)
			if word {
				m := e.LookupWord(cmd.Context(), text, src, dst)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%s)\n", m.Meaning, m.Source)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.TranslateSentence(cmd.Context(), text, src, dst))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "es", "Source language")
	cmd.Flags().StringVar(&to, "to", "en", "Target language")
	cmd.Flags().BoolVar(&word, "word", false, "Look the text up as a single word")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "cachectl: %v\n", err)
		os.Exit(1)
	}
}
