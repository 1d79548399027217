/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/docstore"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <collection>",
		Short: "Print every document of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			docs, err := s.collection(args[0]).GetAll(cmd.Context())
			if err != nil {
				return err
			}
			s.logger.Debug("listed collection", zap.String("collection", args[0]), zap.Int("count", len(docs)))
			return writeDocuments(cmd.OutOrStdout(), flags.output, docs...)
		},
	}
}

func newFindCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "find <collection> <key>",
		Short: "Print one document by key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			doc, err := s.collection(args[0]).FindByKey(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			return writeDocuments(cmd.OutOrStdout(), flags.output, doc)
		},
	}
}

func newInsertCmd(flags *globalFlags) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "insert <collection>",
		Short: "Create a document read as JSON from stdin",
		Long: `Create a document read as JSON from stdin.

The key is taken from --key, then from the document's "id" field. When
neither is set a random UUID is generated. Inserting an existing key fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd.InOrStdin())
			if err != nil {
				return err
			}
			switch {
			case key != "":
				doc[keyField] = key
			case doc.Key() == "":
				doc[keyField] = uuid.NewString()
			}

			s, err := flags.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.collection(args[0]).Insert(cmd.Context(), doc); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc.Key())
			return nil
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "Document key")
	return cmd
}

func newUpdateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "update <collection> <key>",
		Short: "Replace a document with JSON read from stdin",
		Long: `Replace a document with JSON read from stdin.

The stored document is replaced as a whole; fields missing from the new
document are removed. Updating a missing key fails.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd.InOrStdin())
			if err != nil {
				return err
			}
			doc[keyField] = args[1]

			s, err := flags.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			return s.collection(args[0]).Update(cmd.Context(), doc)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := docstore.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "docstore version %s\n", info.Version)
			fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
		},
	}
}
