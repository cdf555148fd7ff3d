// Package cache implements a fixed-capacity, provider-backed lookup cache
// with least-recently-used eviction.
//
// Goals for this package:
//   - Make the core data structures explicit (map index + recency list)
//   - O(1) Get on both hits and misses, independent of capacity
//   - Ask the provider exactly once per miss and never on a hit
//   - Keep the index and the recency list in agreement at all times
//     (Verify checks this in tests)
//   - Always-on statistics, optional Prometheus metrics
//
// The recency list is an arena: entries live in a slice and link to each
// other by slot index. The index maps key -> slot.
//
// LRU is single-threaded. Synchronized adds one mutex around it for shared use.
package cache
