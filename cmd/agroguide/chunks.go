package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agroguide/agroguide/internal/chunker"
)

var chunksCmd = &cobra.Command{
	Use:   "chunks",
	Short: "Split the crop guide files into section chunks",
	Long: `Reads every .txt guide in the corpus source directory, splits it into
per-section chunks, and writes the chunk artifact consumed by "agroguide index".`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.shutdown()

		b := chunker.New(a.cfg.Corpus.MinContentLen, a.logger)
		chunks, err := b.Build(a.cfg.Corpus.SourceDir)
		if err != nil {
			return fmt.Errorf("build chunks: %w", err)
		}
		if err := chunker.WriteChunks(a.cfg.Corpus.ChunksFile, chunks); err != nil {
			return fmt.Errorf("write chunks: %w", err)
		}

		a.logger.Info("Chunk artifact written",
			zap.String("path", a.cfg.Corpus.ChunksFile),
			zap.Int("chunks", len(chunks)),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d chunks to %s\n", len(chunks), a.cfg.Corpus.ChunksFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chunksCmd)
}
