// Package content obtains the site's static data: the veille topic list,
// the project gallery and the profile text.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/devfolio/portfolio/internal/veille"
)

// ErrLoad is wrapped by every content loading failure.
var ErrLoad = errors.New("content failed to load")

// Source yields the raw bytes of a static content document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// Bundled serves a document compiled into the binary.
type Bundled struct {
	Name string
	Data []byte
}

func (b Bundled) Fetch(context.Context) ([]byte, error) { return b.Data, nil }
func (b Bundled) String() string                        { return "bundled:" + b.Name }

// File reads a document from disk.
type File struct {
	Path string
}

func (f File) Fetch(context.Context) ([]byte, error) { return os.ReadFile(f.Path) }
func (f File) String() string                        { return f.Path }

// HTTP performs one GET of URL. There is no retry; the context is the
// only bound on how long it may take.
type HTTP struct {
	URL    string
	Client *http.Client
}

func (h HTTP) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", h.URL, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (h HTTP) String() string { return h.URL }

// Veille is a successfully loaded topic list together with the document
// it was decoded from.
type Veille struct {
	Catalog *veille.Catalog
	Raw     []byte
	Source  string
}

// LoadVeille fetches and decodes the topic list. It returns either a
// complete catalog or an error wrapping ErrLoad, never partial data.
func LoadVeille(ctx context.Context, src Source) (*Veille, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, src, err)
	}
	doc, err := veille.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, src, err)
	}
	if len(doc.Topics) == 0 {
		return nil, fmt.Errorf("%w: %s: no topics", ErrLoad, src)
	}
	return &Veille{
		Catalog: veille.NewCatalog(doc.Topics),
		Raw:     data,
		Source:  src.String(),
	}, nil
}
