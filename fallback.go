package gotrans

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// FallbackTranslator tries each engine of a catalog in order and returns the
// first successful result.
type FallbackTranslator struct {
	catalog *Catalog
	invoker EngineInvoker
	logger  logrus.FieldLogger
	metrics *Metrics
}

// NewFallbackTranslator creates a fallback translator over catalog.
func NewFallbackTranslator(catalog *Catalog, invoker EngineInvoker) *FallbackTranslator {
	return &FallbackTranslator{
		catalog: catalog,
		invoker: invoker,
		logger:  discardLogger(),
	}
}

// Translate returns the result of the first engine that succeeds, or false
// when every engine failed or ctx was cancelled. Engine failures are never
// returned to the caller.
func (f *FallbackTranslator) Translate(ctx context.Context, lang, word string) (Translation, bool) {
	for _, engine := range f.catalog.engines {
		if err := ctx.Err(); err != nil {
			f.logger.WithError(err).WithFields(logrus.Fields{
				"lang": lang,
				"word": word,
			}).Debug("translation cancelled")
			return Translation{}, false
		}

		text, err := f.invoker.Invoke(ctx, engine, lang, word)
		if err == nil && strings.TrimSpace(text) == "" {
			err = &EngineError{Engine: engine, Message: "empty output"}
		}
		f.metrics.engineAttempt(engine, err)

		if err != nil {
			f.logger.WithError(err).WithFields(logrus.Fields{
				"engine": engine,
				"lang":   lang,
				"word":   word,
			}).Debug("engine failed")
			continue
		}

		return Translation{Text: text, Engine: engine}, true
	}

	return Translation{}, false
}

// Catalog returns the catalog the translator iterates.
func (f *FallbackTranslator) Catalog() *Catalog {
	return f.catalog
}
