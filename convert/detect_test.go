package convert

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestLooksLikeDocument(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{"prolog", `<?xml version="1.0"?><document></document>`, true},
		{"bare root", `<document><body/></document>`, true},
		{"leading whitespace", "\n\t <?xml version=\"1.0\"?>", true},
		{"bom", "\xef\xbb\xbf<?xml version=\"1.0\"?>", true},
		{"html", `<html><body/></html>`, false},
		{"text", "just some text", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeDocument([]byte(tt.data)); got != tt.want {
				t.Errorf("looksLikeDocument() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()

	zipPath := filepath.Join(tmpDir, "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(zipFile)
	fw, err := w.Create("doc.xml")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("<?xml version=\"1.0\"?><document/>"))
	w.Close()
	zipFile.Close()

	got, err := isArchiveFile(zipPath)
	if err != nil {
		t.Fatalf("isArchiveFile() error = %v", err)
	}
	if !got {
		t.Error("isArchiveFile() = false for a zip file")
	}

	xmlPath := filepath.Join(tmpDir, "doc.xml")
	if err := os.WriteFile(xmlPath, []byte(`<?xml version="1.0"?><document/>`), 0644); err != nil {
		t.Fatal(err)
	}
	if got, err = isArchiveFile(xmlPath); err != nil || got {
		t.Errorf("isArchiveFile() = %v, %v for an XML file, want false, nil", got, err)
	}

	if got, err = isDocumentFile(xmlPath); err != nil || !got {
		t.Errorf("isDocumentFile() = %v, %v for an XML file, want true, nil", got, err)
	}
	if got, err = isDocumentFile(zipPath); err != nil || got {
		t.Errorf("isDocumentFile() = %v, %v for a zip file, want false, nil", got, err)
	}

	if _, err = isArchiveFile(filepath.Join(tmpDir, "missing")); err == nil {
		t.Error("expected error for nonexistent file")
	}
}
