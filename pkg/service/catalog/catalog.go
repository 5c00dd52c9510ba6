package catalog

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/utils/logging"
)

// ErrUnavailable marks a missing property data file. Recommendation flows
// treat it as a degraded-but-answerable condition rather than a failure.
var ErrUnavailable = goerr.New("property catalog unavailable")

// Catalog serves property listings from a JSON file. Listings are cached
// after the first successful read and replaced wholesale by Reload; the
// cached slice is never handed out directly.
type Catalog struct {
	path string

	mu       sync.RWMutex
	listings []model.PropertyListing
	loadedAt time.Time
}

// New returns a catalog backed by the JSON file at path. The file is not
// read until the first access.
func New(path string) *Catalog {
	return &Catalog{path: path}
}

// Reload reads the property data file and replaces the cached listings. On
// failure the previous cache stays intact.
func (c *Catalog) Reload(ctx context.Context) error {
	listings, err := readListings(c.path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.listings = listings
	c.loadedAt = time.Now()
	c.mu.Unlock()

	logging.From(ctx).Info("property catalog loaded",
		"path", c.path,
		"listings", len(listings),
	)
	return nil
}

// Listings returns a copy of the catalog, loading the file on first use. A
// missing file yields ErrUnavailable; until a load succeeds every call
// retries, so dropping the file in place heals the catalog without a
// restart.
func (c *Catalog) Listings(ctx context.Context) ([]model.PropertyListing, error) {
	c.mu.RLock()
	loaded := !c.loadedAt.IsZero()
	c.mu.RUnlock()

	if !loaded {
		if err := c.Reload(ctx); err != nil {
			return nil, err
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.PropertyListing, len(c.listings))
	copy(out, c.listings)
	return out, nil
}

// KnownLocations returns the distinct suburbs present in the catalog,
// lowercased, in order of first appearance. An unavailable catalog yields
// nil so extraction can still run on its static vocabulary.
func (c *Catalog) KnownLocations(ctx context.Context) []string {
	return c.vocabulary(ctx, func(p *model.PropertyListing) string {
		return p.Location.Suburb
	})
}

// KnownTypes returns the distinct property types present in the catalog,
// lowercased, in order of first appearance.
func (c *Catalog) KnownTypes(ctx context.Context) []string {
	return c.vocabulary(ctx, func(p *model.PropertyListing) string {
		return p.PropertyType
	})
}

func (c *Catalog) vocabulary(ctx context.Context, field func(*model.PropertyListing) string) []string {
	listings, err := c.Listings(ctx)
	if err != nil {
		logging.From(ctx).Debug("catalog vocabulary unavailable", "error", err.Error())
		return nil
	}

	seen := make(map[string]bool, len(listings))
	var values []string
	for i := range listings {
		v := strings.ToLower(strings.TrimSpace(field(&listings[i])))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// Status reports the cached catalog state without triggering a load.
func (c *Catalog) Status() model.CatalogStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.CatalogStatus{
		Available: !c.loadedAt.IsZero(),
		Listings:  len(c.listings),
		LoadedAt:  c.loadedAt,
	}
}

func readListings(path string) ([]model.PropertyListing, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrUnavailable, "property data file missing", goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read property data file", goerr.V("path", path))
	}

	var listings []model.PropertyListing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, goerr.Wrap(err, "failed to parse property data file", goerr.V("path", path))
	}
	return listings, nil
}
