package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agroguide/agroguide/internal/chunker"
	"github.com/agroguide/agroguide/internal/domain"
	"github.com/agroguide/agroguide/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed the chunks and write the index artifacts",
	Long: `Embeds every chunk with the configured embedding model and atomically
replaces the index directory. Builds the chunk artifact first when it is missing.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.shutdown()
		ctx := cmd.Context()

		chunks, err := loadOrBuildChunks(a)
		if err != nil {
			return err
		}

		emb, err := a.embedder(ctx)
		if err != nil {
			return err
		}

		corpus, err := index.Build(ctx, emb, chunks, a.cfg.Embedding.Model, a.logger)
		if err != nil {
			return fmt.Errorf("build index: %w", err)
		}
		if err := index.Write(a.cfg.Index.Dir, corpus); err != nil {
			return fmt.Errorf("write index: %w", err)
		}

		a.logger.Info("Index written",
			zap.String("dir", a.cfg.Index.Dir),
			zap.Int("rows", corpus.Rows()),
			zap.Int("dim", corpus.Manifest.Dim),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d chunks (dim %d) into %s\n",
			corpus.Rows(), corpus.Manifest.Dim, a.cfg.Index.Dir)
		return nil
	},
}

func loadOrBuildChunks(a *app) ([]domain.Chunk, error) {
	chunks, err := chunker.ReadChunks(a.cfg.Corpus.ChunksFile)
	if err == nil {
		return chunks, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read chunks: %w", err)
	}

	a.logger.Info("Chunk artifact missing, building from source",
		zap.String("source_dir", a.cfg.Corpus.SourceDir),
	)
	b := chunker.New(a.cfg.Corpus.MinContentLen, a.logger)
	chunks, err = b.Build(a.cfg.Corpus.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("build chunks: %w", err)
	}
	if err := chunker.WriteChunks(a.cfg.Corpus.ChunksFile, chunks); err != nil {
		return nil, fmt.Errorf("write chunks: %w", err)
	}
	return chunks, nil
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
