package chunker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agroguide/agroguide/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestBuild_SectionSplitting(t *testing.T) {
	dir := t.TempDir()
	longClimate := strings.Repeat("Wheat likes cool weather. ", 4) // ~100 chars
	writeFile(t, dir, "wheat.txt",
		"Climate\n"+longClimate+"\nSoil\nshort soil\n")

	b := New(0, nil)
	chunks, err := b.Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %+v", len(chunks), chunks)
	}
	c := chunks[0]
	if c.Crop != "wheat" || c.Section != "Climate" {
		t.Errorf("unexpected chunk identity: crop=%q section=%q", c.Crop, c.Section)
	}
	if len(c.Content) < domain.MinChunkContentLen {
		t.Errorf("chunk content below threshold: %d", len(c.Content))
	}
}

func TestBuild_MinLengthInvariant(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "rice.txt",
		"Soil\n"+strings.Repeat("Rice grows in clay loam soils with good drainage. ", 3)+
			"\nSowing\ntiny\nIrrigation\n"+strings.Repeat("Flood the field after transplanting. ", 3))

	chunks, err := New(0, nil).Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, c := range chunks {
		if len(c.Content) < domain.MinChunkContentLen {
			t.Errorf("chunk %s/%s below min length: %d", c.Crop, c.Section, len(c.Content))
		}
	}
	for _, c := range chunks {
		if c.Section == "Sowing" {
			t.Error("short Sowing section should have been dropped")
		}
	}
}

func TestBuild_GeneralBeforeFirstHeader(t *testing.T) {
	dir := t.TempDir()
	intro := strings.Repeat("Maize is a widely grown cereal crop in India. ", 3)
	writeFile(t, dir, "maize.txt", intro+"\nClimate\n"+strings.Repeat("Warm days help maize mature. ", 3))

	chunks, err := New(0, nil).Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Section != domain.DefaultSection {
		t.Errorf("expected leading text under %q, got %q", domain.DefaultSection, chunks[0].Section)
	}
	if chunks[1].Section != "Climate" {
		t.Errorf("expected Climate second, got %q", chunks[1].Section)
	}
}

func TestBuild_CropNameFromFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Sweet_Potato.txt",
		"Soil\n"+strings.Repeat("Sandy loam soils with pH 5.8 to 6.2 work best. ", 3))

	chunks, err := New(0, nil).Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Crop != "sweet potato" {
		t.Errorf("expected crop %q, got %q", "sweet potato", chunks[0].Crop)
	}
}

func TestBuild_IgnoresNonTxtAndSortsFiles(t *testing.T) {
	dir := t.TempDir()
	body := "Climate\n" + strings.Repeat("A fairly long climate paragraph for the test corpus. ", 2)
	writeFile(t, dir, "b_crop.txt", body)
	writeFile(t, dir, "a_crop.txt", body)
	writeFile(t, dir, "notes.md", body)

	chunks, err := New(0, nil).Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Crop != "a crop" || chunks[1].Crop != "b crop" {
		t.Errorf("expected sorted file order, got %q then %q", chunks[0].Crop, chunks[1].Crop)
	}
}

func TestBuild_MissingDir(t *testing.T) {
	if _, err := New(0, nil).Build(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing corpus dir")
	}
}

func TestChunkArtifactRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb", "chunks.json")
	in := []domain.Chunk{
		{Crop: "wheat", Section: "Climate", Content: "Cool weather."},
		{Crop: "rice", Section: "Soil", Content: "Clay loam."},
	}
	if err := WriteChunks(path, in); err != nil {
		t.Fatalf("WriteChunks: %v", err)
	}
	out, err := ReadChunks(path)
	if err != nil {
		t.Fatalf("ReadChunks: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d chunks, got %d", len(in), len(out))
	}
	// Order defines the ordinal join with the vector index.
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("chunk %d changed across round trip: %+v != %+v", i, out[i], in[i])
		}
	}
}
