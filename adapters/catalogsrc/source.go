// Package catalogsrc loads the question catalog from its static document,
// either over HTTP or from a local file. The catalog is fetched exactly once
// at startup and treated as immutable for the process lifetime.
package catalogsrc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/catalog"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
)

// HTTPSource fetches the catalog document from a URL
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTP catalog source
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Load fetches and parses the catalog document
func (s *HTTPSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, core.NewCatalogLoadError(fmt.Sprintf("bad catalog URL %s: %v", s.url, err))
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, core.NewCatalogLoadError(fmt.Sprintf("catalog unreachable at %s: %v", s.url, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewCatalogLoadError(fmt.Sprintf("catalog fetch returned HTTP %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewCatalogLoadError(fmt.Sprintf("reading catalog body: %v", err))
	}
	return catalog.Parse(raw)
}

// FileSource reads the catalog document from the local filesystem
type FileSource struct {
	path string
}

// NewFileSource creates a file catalog source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and parses the catalog document
func (s *FileSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, core.NewCatalogLoadError(fmt.Sprintf("reading %s: %v", s.path, err))
	}
	return catalog.Parse(raw)
}
