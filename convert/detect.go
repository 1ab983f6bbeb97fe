package convert

import (
	"bytes"
	"io"
	"os"

	"github.com/h2non/filetype"
)

// sniffLen is enough for the filetype matchers and for the XML prolog.
const sniffLen = 512

func sniffFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// isArchiveFile reports whether path looks like a zip archive.
func isArchiveFile(path string) (bool, error) {
	buf, err := sniffFile(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(buf, "zip"), nil
}

// isDocumentFile reports whether path looks like an XML document source.
func isDocumentFile(path string) (bool, error) {
	buf, err := sniffFile(path)
	if err != nil {
		return false, err
	}
	return looksLikeDocument(buf), nil
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// looksLikeDocument checks for an XML prolog or a bare document root. The
// document may be in any encoding the reader understands, here only the
// common ASCII compatible prefixes are recognized.
func looksLikeDocument(data []byte) bool {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(data, []byte("<?xml")) || bytes.HasPrefix(data, []byte("<document"))
}
