package ports

import (
	"context"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/catalog"
)

// CatalogSource fetches the question catalog document. Loading happens once
// per process start; the catalog is immutable afterwards and there is no
// revalidation or cache invalidation.
type CatalogSource interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}
