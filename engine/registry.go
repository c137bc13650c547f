package engine

import (
	"context"
	"sync"

	"github.com/ZaguanLabs/gotrans"
)

// Registry routes each engine id to the invoker that implements it. Ids
// without a dedicated invoker go to the default invoker, normally the
// translate-shell one.
type Registry struct {
	mu       sync.RWMutex
	fallback Invoker
	engines  map[gotrans.EngineID]Invoker
	order    []gotrans.EngineID
}

// NewRegistry creates a registry that sends unknown ids to def. def may be nil,
// in which case unknown ids fail.
func NewRegistry(def Invoker) *Registry {
	return &Registry{
		fallback: def,
		engines:  make(map[gotrans.EngineID]Invoker),
	}
}

// Register binds id to inv, replacing any previous binding.
func (r *Registry) Register(id gotrans.EngineID, inv Invoker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.engines[id]; !exists {
		r.order = append(r.order, id)
	}
	r.engines[id] = inv
}

// Registered returns the explicitly registered ids in registration order.
func (r *Registry) Registered() []gotrans.EngineID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gotrans.EngineID, len(r.order))
	copy(out, r.order)
	return out
}

// Invoke dispatches to the invoker bound to engine.
func (r *Registry) Invoke(ctx context.Context, engine gotrans.EngineID, lang, word string) (string, error) {
	r.mu.RLock()
	inv, ok := r.engines[engine]
	if !ok {
		inv = r.fallback
	}
	r.mu.RUnlock()

	if inv == nil {
		return "", &gotrans.EngineError{Engine: engine, Message: "no invoker registered"}
	}
	return inv.Invoke(ctx, engine, lang, word)
}

// Verify Registry implements Invoker
var _ Invoker = (*Registry)(nil)
