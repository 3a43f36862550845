package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
)

type fakeCacheRepo struct {
	mu          sync.Mutex
	values      map[string][]byte
	gets        int
	invalidated []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string][]byte)}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	raw, ok := f.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = raw
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range f.values {
		if strings.HasPrefix(key, prefix) {
			delete(f.values, key)
		}
	}
	return nil
}

func (f *fakeCacheRepo) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.values[key]
	return ok
}

type recordingScheduler struct {
	refs []string
}

func (r *recordingScheduler) Schedule(refs ...string) {
	r.refs = append(r.refs, refs...)
}

func testDeps() (ServiceDeps, *fakeCacheRepo, *recordingScheduler) {
	cacheRepo := newFakeCacheRepo()
	scheduler := &recordingScheduler{}
	deps := ServiceDeps{
		Cache:   NewCacheService(cacheRepo, nil, time.Minute, nil, true),
		Cleanup: scheduler,
	}
	return deps, cacheRepo, scheduler
}
