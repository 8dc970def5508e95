package index

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Write persists the corpus into dir as three co-located artifacts:
// manifest, metadata JSON, and raw little-endian float32 vectors. The
// artifacts are staged in a temporary sibling directory and swapped in with
// a rename, so a reader never observes metadata from one build next to
// vectors from another. A file lock serializes concurrent builds against the
// same destination.
func Write(dir string, c *Corpus) error {
	if err := c.validate(); err != nil {
		return err
	}

	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create index parent dir: %w", err)
	}

	lock := flock.New(filepath.Join(parent, filepath.Base(dir)+".lock"))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock index dir: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	stage, err := os.MkdirTemp(parent, filepath.Base(dir)+".stage-")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(stage)

	if err := writeArtifacts(stage, c); err != nil {
		return err
	}
	return swap(stage, dir)
}

func (c *Corpus) validate() error {
	if c.Manifest.Dim <= 0 {
		return fmt.Errorf("invalid dim: %d", c.Manifest.Dim)
	}
	if len(c.Chunks) == 0 {
		return fmt.Errorf("no chunks to write")
	}
	if len(c.Vectors) != len(c.Chunks)*c.Manifest.Dim {
		return fmt.Errorf("vector length mismatch: got %d want %d",
			len(c.Vectors), len(c.Chunks)*c.Manifest.Dim)
	}
	if c.Manifest.Rows != len(c.Chunks) {
		return fmt.Errorf("manifest rows mismatch: got %d want %d",
			c.Manifest.Rows, len(c.Chunks))
	}
	return nil
}

func writeArtifacts(dir string, c *Corpus) error {
	mb, err := json.MarshalIndent(c.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), mb, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	meta, err := json.Marshal(c.Chunks)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, c.Manifest.MetadataFile), meta, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	vf, err := os.Create(filepath.Join(dir, c.Manifest.VectorFile))
	if err != nil {
		return fmt.Errorf("create vector file: %w", err)
	}
	if err := binary.Write(vf, binary.LittleEndian, c.Vectors); err != nil {
		_ = vf.Close()
		return fmt.Errorf("write vectors: %w", err)
	}
	if err := vf.Close(); err != nil {
		return fmt.Errorf("close vector file: %w", err)
	}
	return nil
}

// swap replaces destDir with srcDir by renaming, keeping a best-effort
// rollback if the final rename fails.
func swap(srcDir, destDir string) error {
	backup := destDir + ".bak"
	_ = os.RemoveAll(backup)
	if _, err := os.Stat(destDir); err == nil {
		if err := os.Rename(destDir, backup); err != nil {
			return fmt.Errorf("back up old index: %w", err)
		}
	}
	if err := os.Rename(srcDir, destDir); err != nil {
		if _, stErr := os.Stat(backup); stErr == nil {
			_ = os.Rename(backup, destDir)
		}
		return fmt.Errorf("swap index dir: %w", err)
	}
	_ = os.RemoveAll(backup)
	return nil
}
