// Package extract reads the first-page text and document information
// dictionary of a PDF, and writes the title metadata field back.
package extract

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/pdfrename/pkg/types"
)

// ErrUnreadable marks a PDF that cannot be parsed: corrupt, truncated,
// encrypted, or not a PDF at all.
var ErrUnreadable = errors.New("unreadable document")

// Extractor abstracts PDF parsing so tests can supply a fake.
type Extractor interface {
	// Text returns the plain text of the first page. A document whose
	// first page has no text layer returns "" and no error.
	Text(path string) (string, error)

	// Metadata returns the information dictionary keyed by the types.Meta*
	// constants. Missing entries are absent from the map.
	Metadata(path string) (map[string]string, error)
}

// infoKeys maps information dictionary names to metadata keys.
var infoKeys = map[string]string{
	"Title":        types.MetaTitle,
	"Author":       types.MetaAuthor,
	"Subject":      types.MetaSubject,
	"Keywords":     types.MetaKeywords,
	"Creator":      types.MetaCreator,
	"Producer":     types.MetaProducer,
	"CreationDate": types.MetaCreationDate,
	"ModDate":      types.MetaModDate,
}

var disableConfigDir sync.Once

// pdfcpuConfig returns a relaxed pdfcpu configuration built from the
// compiled-in defaults. pdfcpu would otherwise create ~/.config/pdfcpu on
// first use.
func pdfcpuConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PDFExtractor is the production Extractor. pdfcpu validates the file
// structure; ledongthuc/pdf decodes page text and the info dictionary.
type PDFExtractor struct{}

// NewPDFExtractor returns the production extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Text extracts the first page's text.
func (e *PDFExtractor) Text(path string) (text string, err error) {
	if err := validate(path); err != nil {
		return "", err
	}

	// The text decoder panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: decoding %s: %v", ErrUnreadable, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", fmt.Errorf("%w: %s has no pages", ErrUnreadable, path)
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return "", nil
	}

	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		font := page.Font(name)
		fonts[name] = &font
	}

	text, err = page.GetPlainText(fonts)
	if err != nil {
		return "", fmt.Errorf("%w: reading page 1 of %s: %v", ErrUnreadable, path, err)
	}
	return strings.TrimSpace(text), nil
}

func validate(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	if _, err := api.PageCount(f, pdfcpuConfig()); err != nil {
		return fmt.Errorf("%w: validating %s: %v", ErrUnreadable, path, err)
	}
	return nil
}

// Metadata reads the information dictionary referenced from the trailer.
func (e *PDFExtractor) Metadata(path string) (meta map[string]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			meta, err = nil, fmt.Errorf("%w: reading metadata of %s: %v", ErrUnreadable, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	meta = make(map[string]string)
	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return meta, nil
	}
	for _, key := range info.Keys() {
		name, ok := infoKeys[key]
		if !ok {
			continue
		}
		if v := strings.TrimSpace(info.Key(key).Text()); v != "" {
			meta[name] = v
		}
	}
	return meta, nil
}
