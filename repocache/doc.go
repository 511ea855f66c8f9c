// Package repocache decorates the MongoDB repositories with read-through
// caching. Reads consult the key-value cache first and fall back to the
// document store, repopulating the cache with a time-bound entry. Mutations
// pass through to the document store and then drop the affected cache keys,
// after the write is acknowledged and before the handler responds.
//
// The cache is never authoritative: any cache failure degrades to a plain
// document-store operation.
package repocache
