package gotrans

import "context"

// EngineID identifies one translation engine. Its position in a Catalog
// defines its fallback priority.
type EngineID string

// Translation is the result of a successful lookup.
type Translation struct {
	Text   string
	Engine EngineID // Engine that produced Text; empty when served from cache
	Cached bool     // Whether Text came from the cache
}

// EngineInvoker runs a single translation engine for one word.
// An empty result is treated by callers exactly like an error.
type EngineInvoker interface {
	Invoke(ctx context.Context, engine EngineID, lang, word string) (string, error)
}

// TranslationCache stores translations addressed as language -> word -> text.
type TranslationCache interface {
	// Get returns the cached text and true on a hit, false on a miss.
	// A non-nil error means the store could not be read.
	Get(ctx context.Context, lang, word string) (string, bool, error)

	// Set stores text for (lang, word).
	Set(ctx context.Context, lang, word, value string) error
}

// SessionCache is implemented by stores that pin a connection for the
// duration of one lookup. The returned release func must be called exactly once.
type SessionCache interface {
	TranslationCache
	Session(ctx context.Context) (TranslationCache, func() error, error)
}

// CacheOutcome classifies a single cache read.
type CacheOutcome int

const (
	// CacheMiss means the store answered and holds no value.
	CacheMiss CacheOutcome = iota
	// CacheHit means the store returned a usable value.
	CacheHit
	// CacheFailure means the store could not be read.
	CacheFailure
)

func (o CacheOutcome) String() string {
	switch o {
	case CacheHit:
		return "hit"
	case CacheMiss:
		return "miss"
	case CacheFailure:
		return "error"
	default:
		return "unknown"
	}
}
