package convert

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"textag/config"
	"textag/state"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<document lang="en">
  <title>Sample</title>
  <body>
    <p>plain <strong>bold</strong></p>
  </body>
</document>
`

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Cfg = &config.Config{
		Version: 1,
		Document: config.DocumentConfig{
			Text: config.TextConfig{DefaultFont: "serif", DefaultSize: 11},
		},
		Standards: config.StandardsConfig{Profile: "none"},
	}
	env.Log = zap.NewNop()
	return ctx
}

func TestProcessSingleFile(t *testing.T) {
	ctx := testContext(t)
	srcDir, dstDir := t.TempDir(), t.TempDir()

	srcPath := filepath.Join(srcDir, "sample.xml")
	if err := os.WriteFile(srcPath, []byte(sampleXML), 0644); err != nil {
		t.Fatal(err)
	}

	if err := process(ctx, srcPath, dstDir, zap.NewNop()); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dstDir, "sample.tags"))
	if err != nil {
		t.Fatalf("output not produced: %v", err)
	}
	out := string(data)
	for _, want := range []string{"Part lang=en", "Strong", `run: "bold" font=serif size=11`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestProcessOverwrite(t *testing.T) {
	ctx := testContext(t)
	srcDir, dstDir := t.TempDir(), t.TempDir()

	srcPath := filepath.Join(srcDir, "sample.xml")
	if err := os.WriteFile(srcPath, []byte(sampleXML), 0644); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(dstDir, "sample.tags")
	if err := os.WriteFile(outPath, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	// output exists and overwrite was not requested - single file processing
	// logs the problem and leaves the destination alone
	if err := process(ctx, srcPath, dstDir, zap.NewNop()); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if data, _ := os.ReadFile(outPath); string(data) != "old" {
		t.Fatal("destination modified without overwrite permission")
	}

	state.EnvFromContext(ctx).Overwrite = true
	if err := process(ctx, srcPath, dstDir, zap.NewNop()); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if data, _ := os.ReadFile(outPath); !strings.Contains(string(data), "Part") {
		t.Fatal("destination not overwritten")
	}
}

func TestProcessDirectory(t *testing.T) {
	ctx := testContext(t)
	srcDir, dstDir := t.TempDir(), t.TempDir()

	sub := filepath.Join(srcDir, "books")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{filepath.Join(sub, "one.xml"), filepath.Join(srcDir, "two.xml")} {
		if err := os.WriteFile(name, []byte(sampleXML), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// not a document, must be skipped
	if err := os.WriteFile(filepath.Join(srcDir, "notes.txt"), []byte("just text"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := process(ctx, srcDir, dstDir, zap.NewNop()); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	for _, want := range []string{
		filepath.Join(dstDir, "books", "one.tags"),
		filepath.Join(dstDir, "two.tags"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("expected output %s: %v", want, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dstDir, "notes.tags")); err == nil {
		t.Error("non-document input produced output")
	}
}

func TestProcessArchive(t *testing.T) {
	ctx := testContext(t)
	srcDir, dstDir := t.TempDir(), t.TempDir()

	zipPath := filepath.Join(srcDir, "books.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(zipFile)
	for _, name := range []string{"inner/one.xml", "two.xml"} {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(sampleXML)); err != nil {
			t.Fatal(err)
		}
	}
	w.Close()
	zipFile.Close()

	if err := process(ctx, zipPath, dstDir, zap.NewNop()); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	for _, want := range []string{
		filepath.Join(dstDir, "inner", "one.tags"),
		filepath.Join(dstDir, "two.tags"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("expected output %s: %v", want, err)
		}
	}

	// path inside the archive narrows processing
	dstDir2 := t.TempDir()
	if err := process(ctx, filepath.Join(zipPath, "inner"), dstDir2, zap.NewNop()); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dstDir2, "inner", "one.tags")); err != nil {
		t.Errorf("expected output for archived path: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dstDir2, "two.tags")); err == nil {
		t.Error("entry outside the archived path was processed")
	}
}

func TestProcessMissingSource(t *testing.T) {
	ctx := testContext(t)

	err := process(ctx, filepath.Join(t.TempDir(), "missing.xml"), t.TempDir(), zap.NewNop())
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}
