package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/gym-management-api/internal/repository"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
)

type fileScheduler interface {
	Schedule(refs ...string)
}

// ServiceDeps bundles the collaborators shared by the resource services.
// Every field may be nil.
type ServiceDeps struct {
	Cache   *CacheService
	Cleanup fileScheduler
	Metrics *MetricsService
}

func (d ServiceDeps) schedule(refs ...string) {
	if d.Cleanup == nil || len(refs) == 0 {
		return
	}
	d.Cleanup.Schedule(refs...)
}

// ListPage is a cached list result.
type ListPage[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// cachedList serves a list from the cache or loads and stores it.
func cachedList[T any](ctx context.Context, cache *CacheService, key string, load func() ([]T, int, error)) ([]T, int, error) {
	var page ListPage[T]
	if cache.Get(ctx, key, &page) {
		return page.Items, page.Total, nil
	}
	items, total, err := load()
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []T{}
	}
	cache.Set(ctx, key, ListPage[T]{Items: items, Total: total})
	return items, total, nil
}

// ETag returns the weak validator of a record version.
func ETag(updatedAt time.Time) string {
	return fmt.Sprintf(`W/"%d"`, updatedAt.UnixNano())
}

// ETagMatches evaluates an If-Match header against the current ETag using
// weak comparison. An empty header always matches.
func ETagMatches(header, current string) bool {
	header = strings.TrimSpace(header)
	if header == "" || header == "*" {
		return true
	}
	want := strings.TrimPrefix(current, "W/")
	for _, candidate := range strings.Split(header, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == want {
			return true
		}
	}
	return false
}

func notFound(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, message)
	}
	return nil
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// writeError maps a repository write failure: unique violations become dup,
// missing rows become not found.
func writeError(err error, dup *appErrors.Error, missing, action string) error {
	if repository.IsUniqueViolation(err) {
		return dup
	}
	if nf := notFound(err, missing); nf != nil {
		return nf
	}
	return internalError(err, action)
}
