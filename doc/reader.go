package doc

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// ReadDocument reads XML from r, transcoding legacy encodings as declared by
// the XML prolog, and parses it into the document model.
func ReadDocument(r io.Reader, log *zap.Logger) (*Document, error) {
	d := etree.NewDocument()
	d.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := d.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read document XML: %w", err)
	}
	return ParseDocument(d, log)
}
