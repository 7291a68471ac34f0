package wizard

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/barbearia-urbana/barberbot/domain"
)

// Catalog holds the list of offered services, fetched once at startup.
// There is no invalidation path: a failed load leaves the catalog empty
// (the service list simply renders empty) and nothing retries it.
type Catalog struct {
	mu       sync.RWMutex
	services []domain.Service
	byID     map[string]domain.Service
	loaded   bool

	client CatalogClient
	log    *zap.SugaredLogger
}

// NewCatalog creates an empty, not-yet-loaded catalog.
func NewCatalog(client CatalogClient, log *zap.SugaredLogger) *Catalog {
	return &Catalog{
		byID:   make(map[string]domain.Service),
		client: client,
		log:    log,
	}
}

// Load fetches the catalog. It runs at most once: after a successful load
// the catalog is read-only, and after a failed one it stays empty. The fetch
// happens outside the lock, so readers see an empty catalog until it lands
// instead of blocking behind a slow backend.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.loaded {
		c.mu.Unlock()
		return nil
	}
	c.loaded = true
	c.mu.Unlock()

	services, err := c.client.Services(ctx)
	if err != nil {
		c.log.Warnw("failed to load service catalog, continuing with empty list", "error", err)
		return &FetchError{Resource: "services", Err: err}
	}

	c.mu.Lock()
	c.services = services
	for _, svc := range services {
		c.byID[svc.ID] = svc
	}
	c.mu.Unlock()

	c.log.Infow("service catalog loaded", "services", len(services))
	return nil
}

// Services returns the catalog in backend order.
func (c *Catalog) Services() []domain.Service {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Service, len(c.services))
	copy(out, c.services)
	return out
}

// ServiceByID looks a service up by its opaque identifier.
func (c *Catalog) ServiceByID(id string) (domain.Service, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	svc, ok := c.byID[id]
	return svc, ok
}
