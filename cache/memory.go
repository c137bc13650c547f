package cache

import (
	"context"
	"sync"
)

// InMemoryCache is a thread-safe in-process store. Entries are never evicted.
type InMemoryCache struct {
	langs map[string]map[string]string
	mu    sync.RWMutex
}

// NewInMemoryCache creates an empty in-memory cache.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		langs: make(map[string]map[string]string),
	}
}

// Get retrieves a value from the cache. It never fails.
func (c *InMemoryCache) Get(_ context.Context, lang, word string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	val, ok := c.langs[lang][word]
	return val, ok, nil
}

// Set stores a value in the cache.
func (c *InMemoryCache) Set(_ context.Context, lang, word, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	words, ok := c.langs[lang]
	if !ok {
		words = make(map[string]string)
		c.langs[lang] = words
	}
	words[word] = value
	return nil
}

// Len returns the number of cached words across all languages.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, words := range c.langs {
		n += len(words)
	}
	return n
}

// Clear removes all entries from the cache.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.langs = make(map[string]map[string]string)
}

// Entries returns a copy of the words cached for lang.
func (c *InMemoryCache) Entries(lang string) map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]string, len(c.langs[lang]))
	for word, val := range c.langs[lang] {
		result[word] = val
	}
	return result
}

// Verify InMemoryCache implements TranslationCache
var _ TranslationCache = (*InMemoryCache)(nil)
