/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suparena/docstore"
	"github.com/suparena/docstore/config"
	"github.com/suparena/docstore/datastore"
	"github.com/suparena/docstore/registry"
)

type globalFlags struct {
	configPath string
	backend    string
	logLevel   string
	output     string
}

// session is what a command needs once flags and config are resolved.
type session struct {
	conn   datastore.Conn
	logger *zap.Logger
}

func (s *session) collection(name string) *docstore.Collection[document] {
	return docstore.NewCollection[document](s.conn,
		docstore.WithCollectionName(name),
		docstore.WithLogger(s.logger),
	)
}

func (s *session) close() {
	if err := s.conn.Close(); err != nil {
		s.logger.Warn("closing connection", zap.Error(err))
	}
	_ = s.logger.Sync()
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "docstore",
		Short: "docstore CLI - typed document access for DynamoDB, Redis and SQLite",
		Long: `docstore reads and writes JSON documents through the docstore library.

Settings come from the --config YAML file, a .env file and the environment
(DOCSTORE_BACKEND, AWS_DDB_TABLE, REDIS_ADDR, SQLITE_PATH, ...).

Examples:
  # List every document of a collection
  docstore list players

  # Insert a document read from stdin, generating its id
  echo '{"name":"Alice"}' | docstore insert players

  # Replace a document
  echo '{"name":"Alice B."}' | docstore update players 3f1c...`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVarP(&flags.backend, "backend", "b", "", "Backend override: "+backendList())
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level override (debug|info|warn|error)")
	root.PersistentFlags().StringVarP(&flags.output, "output", "o", "json", "Output format: json|yaml")

	root.AddCommand(
		newListCmd(flags),
		newFindCmd(flags),
		newInsertCmd(flags),
		newUpdateCmd(flags),
		newVersionCmd(),
	)
	return root
}

func backendList() string {
	return strings.Join(registry.Backends(), "|")
}

// open resolves the configuration and connects to the selected backend.
func (f *globalFlags) open(ctx context.Context) (*session, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.backend != "" {
		cfg.Backend = f.backend
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	conn, err := registry.Open(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return &session{conn: conn, logger: logger}, nil
}

// newLogger writes to stderr so command output on stdout stays parseable.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
