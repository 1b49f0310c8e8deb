package cache

import (
	"context"

	"github.com/gartstein/propertyhub/internal/propertybase/events"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"go.uber.org/zap"
)

// Cached resource families. The names match the property base routes.
const (
	Structure  = "structure"
	Categories = "component-categories"
	Types      = "component-types"
	Subtypes   = "component-subtypes"
)

// affected lists the cached families a change to entity makes stale. A
// type moving to another category changes the category's type list, so a
// parent change also drops the child family.
var affected = map[models.Entity][]string{
	models.EntityCategory: {Categories, Types},
	models.EntityType:     {Types, Subtypes},
	models.EntitySubtype:  {Subtypes},
}

// Invalidator drops cache entries in response to property base events.
type Invalidator struct {
	cache  *Cache
	logger *zap.Logger
}

func NewInvalidator(c *Cache, logger *zap.Logger) *Invalidator {
	return &Invalidator{cache: c, logger: logger.Named("cache_invalidator")}
}

// InvalidateEntity drops the families made stale by a change to entity.
func (c *Cache) InvalidateEntity(ctx context.Context, entity models.Entity) {
	for _, resource := range affected[entity] {
		c.InvalidateResource(ctx, resource)
	}
}

// HandleEvent never fails so the consumer always commits.
func (i *Invalidator) HandleEvent(ctx context.Context, event events.Event) error {
	i.cache.InvalidateEntity(ctx, event.Entity)
	i.logger.Debug("Handled component event",
		zap.String("event_type", string(event.Type)),
		zap.String("id", event.ID.String()),
	)
	return nil
}
