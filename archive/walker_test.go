package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func createZip(t *testing.T, names ...string) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, name := range names {
		if name[len(name)-1] == '/' {
			hdr := &zip.FileHeader{Name: name}
			hdr.SetMode(os.ModeDir | 0755)
			if _, err := w.CreateHeader(hdr); err != nil {
				t.Fatalf("Failed to create directory %s in zip: %v", name, err)
			}
			continue
		}
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", name, err)
		}
		if _, err := fw.Write([]byte("content of " + name)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finalize zip: %v", err)
	}
	return zipPath
}

func collect(t *testing.T, zipPath, prefix, ext string) []string {
	t.Helper()

	var visited []string
	err := Walk(zipPath, prefix, ext, func(archive string, file *zip.File) error {
		if archive != zipPath {
			t.Errorf("archive = %s, want %s", archive, zipPath)
		}
		visited = append(visited, file.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	return visited
}

func TestWalk(t *testing.T) {
	zipPath := createZip(t,
		"docs/ch10.xml",
		"docs/ch2.xml",
		"docs/notes.txt",
		"src/",
		"src/extra.xml",
		"readme.xml",
	)

	t.Run("prefix and extension", func(t *testing.T) {
		got := collect(t, zipPath, "docs/", ".xml")
		want := []string{"docs/ch2.xml", "docs/ch10.xml"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("visited %v, want %v (natural order)", got, want)
		}
	})

	t.Run("extension only", func(t *testing.T) {
		got := collect(t, zipPath, "", ".xml")
		want := []string{"docs/ch2.xml", "docs/ch10.xml", "readme.xml", "src/extra.xml"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("visited %v, want %v", got, want)
		}
	})

	t.Run("everything", func(t *testing.T) {
		if got := collect(t, zipPath, "", ""); len(got) != 5 {
			t.Errorf("visited %d files, want 5 (directories skipped)", len(got))
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := collect(t, zipPath, "nonexistent/", ""); len(got) != 0 {
			t.Errorf("visited %v, want nothing", got)
		}
	})

	t.Run("walkFn error stops the walk", func(t *testing.T) {
		stopErr := errors.New("stop walking")
		var visited int
		err := Walk(zipPath, "", ".xml", func(string, *zip.File) error {
			visited++
			if visited == 2 {
				return stopErr
			}
			return nil
		})
		if err != stopErr {
			t.Errorf("Walk() error = %v, want %v", err, stopErr)
		}
		if visited != 2 {
			t.Errorf("visited %d files, want 2 (early termination)", visited)
		}
	})
}

func TestWalkInvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		err := Walk("/nonexistent/file.zip", "", "", func(string, *zip.File) error { return nil })
		if err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		invalidZip := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(invalidZip, []byte("not a zip file"), 0644); err != nil {
			t.Fatalf("Failed to create invalid zip: %v", err)
		}
		err := Walk(invalidZip, "", "", func(string, *zip.File) error { return nil })
		if err == nil {
			t.Error("Expected error for invalid zip file")
		}
	})
}

func TestWalkUnsafeEntry(t *testing.T) {
	zipPath := createZip(t, "../escape.xml", "ok.xml")

	err := Walk(zipPath, "", "", func(string, *zip.File) error { return nil })
	if err == nil {
		t.Fatal("Expected error for path traversal entry")
	}
}
