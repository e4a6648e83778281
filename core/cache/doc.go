// Package cache provides a thread-safe, generic LRU cache.
//
// The router uses it to share compiled regular expressions between trie nodes
// that declare the same parameter constraint, but the package has no routing
// knowledge and can be used on its own.
//
// # Usage
//
//	import "github.com/dmitrymomot/pathrouter/core/cache"
//
//	c := cache.NewLRUCache[string, *regexp.Regexp](256)
//
//	if rex, found := c.Get(`^[0-9]+$`); found {
//		return rex
//	}
//	rex := regexp.MustCompile(`^[0-9]+$`)
//	c.Put(`^[0-9]+$`, rex)
//
// # Eviction Callbacks
//
// Set up a callback to observe items leaving the cache:
//
//	c.SetEvictCallback(func(key string, rex *regexp.Regexp) {
//		log.Printf("evicted %s", key)
//	})
//
// # Thread Safety
//
// All cache operations are safe for concurrent use without external
// synchronization.
//
// # Performance Characteristics
//
//   - Get: O(1) average case
//   - Put: O(1) average case
//   - Remove: O(1) average case
//   - Memory: O(capacity)
//
// The implementation combines a hash map with a doubly-linked list to keep all
// operations constant-time.
package cache
