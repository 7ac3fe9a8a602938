// Package cache provides the file-backed key/value store holding cached
// listing snapshots, one JSON file per search-parameter tuple.
//
// The store itself is a dumb string KV: it neither inspects nor expires
// values. Freshness is a property of the snapshot's embedded timestamp and
// is checked by the retrieval pipeline with Fresh; stale entries are
// bypassed on read, never deleted.
package cache
