// Package provider implements data sources the cache can sit in front of.
//
// Every provider satisfies cache.Provider and reports unresolvable keys with
// cache.NotFound, which carries errors.CodeNotFound.
//
//   - Map: in-memory map that counts fetches; used by tests and the demo
//   - Func: adapts a plain function
//   - Redis: string values from Redis (GET prefix+key)
//   - Postgres: string values from a key/value table
package provider
