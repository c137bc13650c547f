package cache

import (
	"context"
	"sync"
	"testing"
)

func TestInMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	if err := c.Set(ctx, "es", "hello", "hola"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok, err := c.Get(ctx, "es", "hello")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Error("Get should return true for existing key")
	}
	if val != "hola" {
		t.Errorf("Get returned %q, want %q", val, "hola")
	}

	// Same word, other language
	val, ok, _ = c.Get(ctx, "fr", "hello")
	if ok {
		t.Error("Get should return false for a language with no entries")
	}
	if val != "" {
		t.Errorf("Get should return empty string on miss, got %q", val)
	}
}

func TestInMemoryCache_WordIsVerbatim(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	c.Set(ctx, "es", "Hello", "Hola")

	if _, ok, _ := c.Get(ctx, "es", "hello"); ok {
		t.Error("lookup must not normalize case")
	}
	if _, ok, _ := c.Get(ctx, "es", " Hello"); ok {
		t.Error("lookup must not trim whitespace")
	}
}

func TestInMemoryCache_Overwrite(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	c.Set(ctx, "es", "hello", "hola")
	c.Set(ctx, "es", "hello", "buenas")

	val, _, _ := c.Get(ctx, "es", "hello")
	if val != "buenas" {
		t.Errorf("Value should be overwritten, got %q", val)
	}
}

func TestInMemoryCache_LenAndClear(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	if c.Len() != 0 {
		t.Errorf("Empty cache should have length 0, got %d", c.Len())
	}

	c.Set(ctx, "es", "hello", "hola")
	c.Set(ctx, "es", "cat", "gato")
	c.Set(ctx, "de", "cat", "Katze")

	if c.Len() != 3 {
		t.Errorf("Cache should have length 3, got %d", c.Len())
	}

	entries := c.Entries("es")
	if len(entries) != 2 || entries["cat"] != "gato" {
		t.Errorf("unexpected entries for es: %v", entries)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Cleared cache should have length 0, got %d", c.Len())
	}
}

func TestInMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			lang := string(rune('a' + i%5))
			c.Set(ctx, lang, string(rune('a'+i%26)), "value")
		}(i)
		go func(i int) {
			defer wg.Done()
			lang := string(rune('a' + i%5))
			c.Get(ctx, lang, string(rune('a'+i%26)))
		}(i)
	}

	wg.Wait()
}
