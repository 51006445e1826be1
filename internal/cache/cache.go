package cache

// CacheI is satisfied by hashicorp's expirable LRU. Services depend on
// this interface so tests can substitute a mock.
type CacheI[K comparable, V any] interface {
	Get(key K) (value V, ok bool)
	Add(key K, value V) (evicted bool)
}
