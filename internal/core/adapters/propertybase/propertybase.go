// Package propertybase is the core adapter over the property base REST API.
package propertybase

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gartstein/propertyhub/internal/core/adapters"
	"github.com/gartstein/propertyhub/internal/core/cache"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
)

type Adapter struct {
	client *adapters.Client
	cache  *cache.Cache
}

// New wraps client. c may be nil to disable caching.
func New(client *adapters.Client, c *cache.Cache) *Adapter {
	return &Adapter{client: client, cache: c}
}

func pageQuery(p models.PageRequest) map[string]string {
	q := map[string]string{}
	if p.Page > 0 {
		q["page"] = strconv.Itoa(p.Page)
	}
	if p.Limit > 0 {
		q["limit"] = strconv.Itoa(p.Limit)
	}
	return q
}

func setID(q map[string]string, key string, id uuid.UUID) {
	if id != uuid.Nil {
		q[key] = id.String()
	}
}

func structureQuery(f models.StructureFilter, p models.PageRequest) map[string]string {
	q := pageQuery(p)
	setID(q, "companyId", f.CompanyID)
	setID(q, "propertyId", f.PropertyID)
	setID(q, "buildingId", f.BuildingID)
	setID(q, "staircaseId", f.StaircaseID)
	setID(q, "residenceId", f.ResidenceID)
	return q
}

func componentQuery(f models.ComponentFilter, p models.PageRequest) map[string]string {
	q := pageQuery(p)
	setID(q, "categoryId", f.CategoryID)
	setID(q, "typeId", f.TypeID)
	setID(q, "subtypeId", f.SubtypeID)
	setID(q, "modelId", f.ModelID)
	setID(q, "componentId", f.ComponentID)
	setID(q, "spaceId", f.SpaceID)
	q["subtypeName"] = f.SubtypeName
	q["modelName"] = f.ModelName
	q["manufacturer"] = f.Manufacturer
	q["status"] = string(f.Status)
	if f.ActiveOnly {
		q["active"] = "true"
	}
	return q
}

// queryKey renders q in a stable order for cache keys.
func queryKey(q map[string]string) string {
	values := url.Values{}
	for k, v := range q {
		if v != "" {
			values.Set(k, v)
		}
	}
	return values.Encode()
}

func resourcePath(resource string, id uuid.UUID) string {
	return "/" + resource + "/" + id.String()
}

func get[T any](ctx context.Context, a *Adapter, family, resource string, id uuid.UUID) (*T, error) {
	fetch := func(ctx context.Context) (*T, error) {
		return adapters.Get[*T](ctx, a.client, resourcePath(resource, id), nil)
	}
	if family == "" {
		return fetch(ctx)
	}
	return cache.Through(ctx, a.cache, cache.Key(family, resource, id.String()), fetch)
}

func list[T any](ctx context.Context, a *Adapter, family, resource string, q map[string]string) (models.Page[T], error) {
	fetch := func(ctx context.Context) (models.Page[T], error) {
		return adapters.GetPage[T](ctx, a.client, "/"+resource, q)
	}
	if family == "" {
		return fetch(ctx)
	}
	return cache.Through(ctx, a.cache, cache.Key(family, resource, "list", queryKey(q)), fetch)
}

// cachedEntities names the entity behind each cached component resource.
var cachedEntities = map[string]models.Entity{
	"component-categories": models.EntityCategory,
	"component-types":      models.EntityType,
	"component-subtypes":   models.EntitySubtype,
}

// invalidate drops local cache entries after a successful mutation so this
// instance does not wait for the change event.
func (a *Adapter) invalidate(ctx context.Context, resource string) {
	if entity, ok := cachedEntities[resource]; ok {
		a.cache.InvalidateEntity(ctx, entity)
	}
}

func create[T any](ctx context.Context, a *Adapter, resource string, body *T) (*T, error) {
	out, err := adapters.Send[*T](ctx, a.client, http.MethodPost, "/"+resource, body)
	if err == nil {
		a.invalidate(ctx, resource)
	}
	return out, err
}

func update[U, T any](ctx context.Context, a *Adapter, resource string, id uuid.UUID, body *U) (*T, error) {
	out, err := adapters.Send[*T](ctx, a.client, http.MethodPut, resourcePath(resource, id), body)
	if err == nil {
		a.invalidate(ctx, resource)
	}
	return out, err
}

func (a *Adapter) remove(ctx context.Context, resource string, id uuid.UUID) error {
	err := a.client.Do(ctx, adapters.Request{Method: http.MethodDelete, Path: resourcePath(resource, id)}, nil)
	if err == nil {
		a.invalidate(ctx, resource)
	}
	return err
}
