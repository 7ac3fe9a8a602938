// Package engine implements the listings retrieval pipeline: cache lookup,
// paginated API fetch, and cache write-back for a search-parameter tuple.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/unleaded-cli/unleaded/internal/autodev"
	"github.com/unleaded-cli/unleaded/internal/engine/cache"
	"github.com/unleaded-cli/unleaded/internal/schema"
)

// PageFetcher fetches one validated page of listings. Satisfied by
// *autodev.Client.
type PageFetcher interface {
	Page(ctx context.Context, params autodev.SearchParams, page int) ([]schema.Listing, []byte, error)
}

// KV is the cache-store collaborator. Satisfied by *cache.Store.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Hooks carries the optional progress/status callbacks invoked synchronously
// during a fetch, purely for UI feedback. A nil hook is skipped; a panicking
// hook is swallowed and never aborts the fetch.
type Hooks struct {
	OnProgress func(count int)
	OnStatus   func(message string)
}

func (h Hooks) progress(count int) {
	if h.OnProgress == nil {
		return
	}
	defer func() { _ = recover() }()
	h.OnProgress(count)
}

func (h Hooks) status(message string) {
	if h.OnStatus == nil {
		return
	}
	defer func() { _ = recover() }()
	h.OnStatus(message)
}

// Fetcher orchestrates cache lookup, paginated API fetch, and cache
// write-back. One fetch is in flight per process at a time.
type Fetcher struct {
	store  KV
	client PageFetcher
	logger zerolog.Logger

	// rawDir, when non-empty, receives one raw page body per request under
	// a per-fetch run directory. Dump failures never fail the fetch.
	rawDir string

	// now is replaceable for freshness-boundary tests.
	now func() time.Time
}

// NewFetcher creates a Fetcher over the given cache store and API client.
// rawDir enables raw-page diagnostics dumps when non-empty.
func NewFetcher(store KV, client PageFetcher, logger zerolog.Logger, rawDir string) *Fetcher {
	return &Fetcher{
		store:  store,
		client: client,
		logger: logger,
		rawDir: rawDir,
		now:    time.Now,
	}
}

// Fetch returns the full listing set for params, from the cache when a fresh
// snapshot exists and otherwise from the API, paginating until a short page.
// Cache read problems of any kind degrade silently to an API fetch; API and
// decode failures surface to the caller. A successful API fetch writes the
// snapshot back before returning; the write itself is best-effort.
func (f *Fetcher) Fetch(ctx context.Context, params autodev.SearchParams, hooks Hooks) ([]schema.Listing, error) {
	key := cache.Key(params)

	hooks.status("Loading cache")
	if listings, ok := f.fromCache(key, hooks); ok {
		return listings, nil
	}

	hooks.status("Cache miss, querying API")
	listings, err := f.fromAPI(ctx, params, hooks)
	if err != nil {
		return nil, err
	}

	f.writeBack(key, listings)
	hooks.status("Loaded from API")
	return listings, nil
}

// fromCache attempts the cache path. Any failure (absent, malformed, stale)
// reports false and leaves the entry in place.
func (f *Fetcher) fromCache(key string, hooks Hooks) ([]schema.Listing, bool) {
	value, err := f.store.Get(key)
	if err != nil {
		f.logger.Debug().Err(err).Str("key", key).Msg("cache read missed")
		return nil, false
	}

	snapshot, err := schema.DecodeCached([]byte(value))
	if err != nil {
		f.logger.Warn().Err(err).Str("key", key).Msg("discarding malformed cache entry")
		return nil, false
	}

	if !cache.Fresh(snapshot.Timestamp, f.now()) {
		f.logger.Debug().Str("key", key).Msg("cache entry stale, bypassing")
		return nil, false
	}

	hooks.progress(len(snapshot.Listings))
	hooks.status("Loaded from cache")
	return snapshot.Listings, true
}

// fromAPI runs the paginated fetch loop: pages of autodev.PageSize from page
// 1 upward, stopping at the first page shorter than the page size. Pages are
// fetched strictly in order so progress stays monotonic.
func (f *Fetcher) fromAPI(ctx context.Context, params autodev.SearchParams, hooks Hooks) ([]schema.Listing, error) {
	runDir := f.runDir()

	var all []schema.Listing
	for page := 1; ; page++ {
		listings, raw, err := f.client.Page(ctx, params, page)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}
		hooks.status(fmt.Sprintf("Page %d: %d listings", page, len(listings)))

		f.dumpRaw(runDir, page, raw)

		all = append(all, listings...)
		hooks.progress(len(all))

		if len(listings) < autodev.PageSize {
			return all, nil
		}
	}
}

// writeBack persists the snapshot under key. Failures are logged and
// otherwise ignored; the fetched data is still returned to the caller.
func (f *Fetcher) writeBack(key string, listings []schema.Listing) {
	snapshot := schema.CachedListings{Timestamp: f.now().UnixMilli(), Listings: listings}
	data, err := schema.EncodeCached(snapshot)
	if err != nil {
		f.logger.Warn().Err(err).Str("key", key).Msg("encoding cache snapshot failed")
		return
	}
	if err := f.store.Set(key, string(data)); err != nil {
		f.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// runDir creates the per-fetch diagnostics directory and returns its path,
// or "" when dumping is disabled or the directory cannot be created.
func (f *Fetcher) runDir() string {
	if f.rawDir == "" {
		return ""
	}
	entropy := ulid.Monotonic(rand.New(rand.NewSource(f.now().UnixNano())), 0) //nolint:gosec // run IDs need uniqueness, not unpredictability
	dir := filepath.Join(f.rawDir, ulid.MustNew(ulid.Timestamp(f.now()), entropy).String())
	if err := os.MkdirAll(dir, 0750); err != nil {
		f.logger.Debug().Err(err).Msg("raw page dump disabled: cannot create run directory")
		return ""
	}
	return dir
}

// dumpRaw persists one raw page body for diagnostics, best-effort.
func (f *Fetcher) dumpRaw(runDir string, page int, body []byte) {
	if runDir == "" || body == nil {
		return
	}
	path := filepath.Join(runDir, fmt.Sprintf("raw_page_%d.json", page))
	if err := os.WriteFile(path, body, 0600); err != nil {
		f.logger.Debug().Err(err).Str("path", path).Msg("raw page dump failed")
	}
}
