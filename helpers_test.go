package gotrans

import (
	"context"
	"errors"
	"sync"
)

// spyInvoker answers from a fixed table and records every call.
type spyInvoker struct {
	mu      sync.Mutex
	results map[EngineID]map[string]string // engine -> "lang/word" -> text
	calls   []EngineID
	block   chan struct{} // when set, Invoke waits on it
}

func newSpyInvoker() *spyInvoker {
	return &spyInvoker{results: make(map[EngineID]map[string]string)}
}

func (s *spyInvoker) add(engine EngineID, lang, word, text string) *spyInvoker {
	if s.results[engine] == nil {
		s.results[engine] = make(map[string]string)
	}
	s.results[engine][lang+"/"+word] = text
	return s
}

func (s *spyInvoker) Invoke(ctx context.Context, engine EngineID, lang, word string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, engine)
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}

	if text, ok := s.results[engine][lang+"/"+word]; ok {
		return text, nil
	}
	return "", &EngineError{Engine: engine, Message: "no translation"}
}

func (s *spyInvoker) callLog() []EngineID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EngineID, len(s.calls))
	copy(out, s.calls)
	return out
}

var errStoreDown = errors.New("store down")

// spyCache is an in-memory TranslationCache with injectable failures.
type spyCache struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	gets   int
	sets   int
}

func newSpyCache() *spyCache {
	return &spyCache{data: make(map[string]string)}
}

func (c *spyCache) Get(ctx context.Context, lang, word string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.data[lang+"/"+word]
	return v, ok, nil
}

func (c *spyCache) Set(ctx context.Context, lang, word, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[lang+"/"+word] = value
	return nil
}

func (c *spyCache) value(lang, word string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[lang+"/"+word]
	return v, ok
}

// sessionSpy wraps a spyCache as a SessionCache and counts sessions.
type sessionSpy struct {
	*spyCache
	openErr  error
	opened   int
	released int
}

func (s *sessionSpy) Session(ctx context.Context) (TranslationCache, func() error, error) {
	if s.openErr != nil {
		return nil, nil, s.openErr
	}
	s.opened++
	return s.spyCache, func() error {
		s.released++
		return nil
	}, nil
}

func mustCatalog(ids ...EngineID) *Catalog {
	c, err := NewCatalog(ids)
	if err != nil {
		panic(err)
	}
	return c
}
