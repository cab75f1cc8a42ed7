package testexamples

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/recovery"
)

// EnvironmentCache is a thread-safe, in-memory store for values that jobs
// publish and request handlers read, such as the latest roster census.
type EnvironmentCache interface {
	// Put sets the value of key, replacing any previous value.
	Put(string, interface{})
	// PutNew adds a new (key, value) pair, returning false if the key
	// already exists.
	PutNew(string, interface{}) bool
	// Watch starts a goroutine that replaces the value of the key with
	// every value received on the channel. Receiving an error, closing
	// the channel, or canceling the context removes the key.
	Watch(context.Context, string, <-chan interface{}) bool
	// Get returns the value of the given key.
	Get(string) (interface{}, bool)
	// Delete removes the key and stops its watcher.
	Delete(string)
	// Keys returns the sorted list of keys.
	Keys() []string
}

type envCache struct {
	mu       sync.RWMutex
	cache    map[string]interface{}
	watchers map[string]*cacheWatcher
}

type cacheWatcher struct {
	cancel context.CancelFunc
}

func newEnvironmentCache() *envCache {
	return &envCache{
		cache:    map[string]interface{}{},
		watchers: map[string]*cacheWatcher{},
	}
}

func (c *envCache) Put(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = value
}

func (c *envCache) PutNew(key string, value interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cache[key]; ok {
		return false
	}

	c.cache[key] = value
	return true
}

// Watch requires the key to exist and to have no other watcher.
func (c *envCache) Watch(ctx context.Context, key string, updates <-chan interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cache[key]; !ok {
		return false
	}
	if _, ok := c.watchers[key]; ok {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	self := &cacheWatcher{cancel: cancel}
	c.watchers[key] = self

	go func() {
		defer recovery.LogStackTraceAndContinue(fmt.Sprintf("cache watcher for '%s'", key))

		reason := "watcher panicked"
		defer func() {
			c.mu.Lock()
			if current, ok := c.watchers[key]; ok && current == self {
				delete(c.cache, key)
				delete(c.watchers, key)
			}
			c.mu.Unlock()
			cancel()

			grip.Debug(message.Fields{
				"message": "cache watcher exited",
				"key":     key,
				"reason":  reason,
			})
		}()

		for {
			select {
			case <-ctx.Done():
				reason = "context canceled"
				return
			case value, ok := <-updates:
				if !ok {
					reason = "updates closed"
					return
				}
				if err, isErr := value.(error); isErr {
					reason = err.Error()
					return
				}

				c.apply(key, self, value)
			}
		}
	}()

	return true
}

// apply stores a watched value unless the watcher has been replaced.
func (c *envCache) apply(key string, w *cacheWatcher, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watchers[key] == w {
		c.cache[key] = value
	}
}

func (c *envCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.cache[key]
	return value, ok
}

func (c *envCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.cache, key)
	if w, ok := c.watchers[key]; ok {
		delete(c.watchers, key)
		w.cancel()
	}
}

func (c *envCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.cache))
	for k := range c.cache {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
