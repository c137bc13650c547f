package gotrans

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Translator is the cache-aside lookup in front of a FallbackTranslator.
type Translator struct {
	fallback *FallbackTranslator
	cache    TranslationCache
	logger   logrus.FieldLogger
	metrics  *Metrics
	flight   *singleflight.Group
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache. Without one every lookup goes to the engines.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithLogger sets the logger used for cache and engine diagnostics.
func WithLogger(logger logrus.FieldLogger) TranslatorOption {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMetrics sets the Prometheus collectors.
func WithMetrics(m *Metrics) TranslatorOption {
	return func(t *Translator) {
		t.metrics = m
	}
}

// WithSingleFlight coalesces concurrent misses for the same (lang, word) so
// the engines run once. The shared run outlives a cancelled first caller and
// is bounded by that caller's deadline.
func WithSingleFlight() TranslatorOption {
	return func(t *Translator) {
		t.flight = &singleflight.Group{}
	}
}

// NewTranslator creates a Translator over the given catalog and invoker.
func NewTranslator(catalog *Catalog, invoker EngineInvoker, opts ...TranslatorOption) *Translator {
	t := &Translator{
		logger: discardLogger(),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.fallback = NewFallbackTranslator(catalog, invoker)
	t.fallback.logger = t.logger
	t.fallback.metrics = t.metrics

	return t
}

// Lookup returns the translation of word into lang, consulting the cache
// first. Cache failures degrade to uncached translation and are only logged.
// It returns false when no engine produced a translation.
func (t *Translator) Lookup(ctx context.Context, lang, word string) (Translation, bool) {
	store, release := t.acquire(ctx)
	defer release()

	if store != nil {
		if text, outcome := t.read(ctx, store, lang, word); outcome == CacheHit {
			t.metrics.lookup("cached")
			return Translation{Text: text, Cached: true}, true
		}
	}

	tr, ok := t.compute(ctx, store, lang, word)
	if !ok {
		t.metrics.lookup("absent")
		return Translation{}, false
	}

	t.metrics.lookup("translated")
	return tr, true
}

// Translate is Lookup with an error result: ErrNoTranslation when absent.
func (t *Translator) Translate(ctx context.Context, lang, word string) (string, error) {
	tr, ok := t.Lookup(ctx, lang, word)
	if !ok {
		return "", ErrNoTranslation
	}
	return tr.Text, nil
}

// Catalog returns the engine catalog.
func (t *Translator) Catalog() *Catalog {
	return t.fallback.Catalog()
}

// acquire returns the store to use for one lookup and its release func.
// A nil store means the lookup runs uncached.
func (t *Translator) acquire(ctx context.Context) (TranslationCache, func()) {
	noop := func() {}
	if t.cache == nil {
		return nil, noop
	}

	sc, ok := t.cache.(SessionCache)
	if !ok {
		return t.cache, noop
	}

	session, release, err := sc.Session(ctx)
	if err != nil {
		t.metrics.cacheRead(CacheFailure)
		t.logger.WithError(err).Warn("failed to open cache session")
		return nil, noop
	}

	return session, func() {
		if err := release(); err != nil {
			t.logger.WithError(err).Warn("failed to release cache session")
		}
	}
}

func (t *Translator) read(ctx context.Context, store TranslationCache, lang, word string) (string, CacheOutcome) {
	text, ok, err := store.Get(ctx, lang, word)

	outcome := CacheHit
	switch {
	case err != nil:
		outcome = CacheFailure
		t.logger.WithError(err).WithFields(logrus.Fields{
			"lang": lang,
			"word": word,
		}).Warn("failed to access the cache")
	case !ok || text == "":
		outcome = CacheMiss
	}

	t.metrics.cacheRead(outcome)
	return text, outcome
}

// compute runs the fallback chain and stores a fresh result. With
// single-flight enabled, concurrent identical calls share one run and each
// caller stops waiting when its own ctx ends.
func (t *Translator) compute(ctx context.Context, store TranslationCache, lang, word string) (Translation, bool) {
	if t.flight == nil {
		return t.translateAndStore(ctx, store, lang, word)
	}

	ch := t.flight.DoChan(lang+"\x00"+word, func() (interface{}, error) {
		return t.sharedTranslate(ctx, lang, word)
	})

	select {
	case <-ctx.Done():
		t.logger.WithError(ctx.Err()).WithFields(logrus.Fields{
			"lang": lang,
			"word": word,
		}).Debug("stopped waiting for shared translation")
		return Translation{}, false
	case res := <-ch:
		if res.Err != nil {
			return Translation{}, false
		}
		tr, ok := res.Val.(Translation)
		return tr, ok
	}
}

// sharedTranslate is the body of a single-flight run. It ignores the
// leader's cancellation but keeps its deadline, and it holds its own cache
// session because waiters may outlive the leader.
func (t *Translator) sharedTranslate(ctx context.Context, lang, word string) (interface{}, error) {
	shared := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		shared, cancel = context.WithDeadline(shared, deadline)
		defer cancel()
	}

	store, release := t.acquire(shared)
	defer release()

	tr, ok := t.translateAndStore(shared, store, lang, word)
	if !ok {
		return nil, ErrNoTranslation
	}
	return tr, nil
}

func (t *Translator) translateAndStore(ctx context.Context, store TranslationCache, lang, word string) (Translation, bool) {
	tr, ok := t.fallback.Translate(ctx, lang, word)
	if !ok {
		return Translation{}, false
	}

	if store != nil {
		err := store.Set(ctx, lang, word, tr.Text)
		t.metrics.cacheWrite(err)
		if err != nil {
			t.logger.WithError(err).WithFields(logrus.Fields{
				"lang": lang,
				"word": word,
			}).Warn("failed to save translation to the cache")
		}
	}

	return tr, true
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
