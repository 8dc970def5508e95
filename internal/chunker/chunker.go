// Package chunker splits scraped per-crop text files into section-labeled
// knowledge chunks.
package chunker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/agroguide/agroguide/internal/domain"
)

// Builder turns a directory of scraped crop pages into chunks.
type Builder struct {
	minContentLen int
	logger        *zap.Logger
}

// New creates a chunk builder. minContentLen <= 0 falls back to the domain
// default.
func New(minContentLen int, logger *zap.Logger) *Builder {
	if minContentLen <= 0 {
		minContentLen = domain.MinChunkContentLen
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{minContentLen: minContentLen, logger: logger}
}

// Build scans dir for .txt files, one per crop, and returns the ordered chunk
// set. The filename minus extension becomes the crop identifier (lowercased,
// underscores replaced with spaces). Files are processed in sorted name order
// so repeated builds emit chunks in the same order. Unreadable files are
// skipped with a warning; they never fail the run.
func (b *Builder) Build(dir string) ([]domain.Chunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var chunks []domain.Chunk
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			b.logger.Warn("Skipping unreadable source file",
				zap.String("file", name),
				zap.Error(err),
			)
			continue
		}

		crop := cropFromFilename(name)
		chunks = append(chunks, b.splitSections(crop, string(data))...)
	}

	b.logger.Info("Chunks built",
		zap.String("dir", dir),
		zap.Int("files", len(names)),
		zap.Int("chunks", len(chunks)),
	)
	return chunks, nil
}

// splitSections scans text line by line. A line that exactly equals one of
// the fixed section headers opens a new section; everything else accumulates
// into the currently open one. Text before the first header belongs to
// "General". Sections whose trimmed content is shorter than minContentLen are
// dropped.
func (b *Builder) splitSections(crop, text string) []domain.Chunk {
	section := domain.DefaultSection
	var buf []string
	var chunks []domain.Chunk

	flush := func() {
		content := strings.TrimSpace(strings.Join(buf, "\n"))
		if len(content) >= b.minContentLen {
			chunks = append(chunks, domain.Chunk{Crop: crop, Section: section, Content: content})
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if isSectionHeader(line) {
			flush()
			section = line
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return chunks
}

func isSectionHeader(line string) bool {
	for _, h := range domain.SectionHeaders {
		if line == h {
			return true
		}
	}
	return false
}

func cropFromFilename(name string) string {
	crop := strings.TrimSuffix(name, ".txt")
	crop = strings.ReplaceAll(crop, "_", " ")
	return strings.ToLower(crop)
}
