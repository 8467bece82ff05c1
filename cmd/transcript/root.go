// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/gradetex/internal/bootstrap"
	"github.com/taibuivan/gradetex/internal/platform/config"
	"github.com/taibuivan/gradetex/internal/platform/constants"
	"github.com/taibuivan/gradetex/internal/transcript"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose bool
	offline bool
	cache   string
	timeout time.Duration
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "transcript",
		Short:         "Build LaTeX transcripts from grade reports",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&flags.offline, "offline", false, "Skip the remote title service")
	root.PersistentFlags().StringVar(&flags.cache, "cache", "", "Title cache backend (memory, redis, postgres, sqlite); overrides CACHE_BACKEND")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 2*time.Minute, "Overall operation timeout")

	root.AddCommand(newBuildCommand(flags))
	root.AddCommand(newTitleCommand(flags))

	return root
}

// environment is everything a subcommand needs, built from configuration and flags.
type environment struct {
	log     *slog.Logger
	service *transcript.Service
	close   func()
}

// setup loads configuration, applies the global flags, and wires the service.
func setup(context context.Context, cmd *cobra.Command, flags *globalFlags) (*environment, error) {
	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.cache != "" {
		cfg.CacheBackend = flags.cache
	}
	if flags.offline {
		cfg.RemoteDisabled = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cache, err := bootstrap.OpenCache(context, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open title cache: %w", err)
	}

	resolver := bootstrap.NewResolver(cfg, cache.Cache, log)
	service := transcript.NewService(resolver, transcript.Config{
		Workers:  cfg.ResolveWorkers,
		LogoPath: cfg.LogoPath,
	}, log)

	return &environment{log: log, service: service, close: cache.Close}, nil
}
