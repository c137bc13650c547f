package engine

import (
	"context"
	"sync"

	"github.com/ZaguanLabs/gotrans"
)

// Call records one invocation of a MockInvoker.
type Call struct {
	Engine gotrans.EngineID
	Lang   string
	Word   string
}

// MockInvoker is a scripted invoker for tests. It is safe for concurrent use.
type MockInvoker struct {
	// Translations maps engine -> "lang/word" -> text. Missing entries fail.
	Translations map[gotrans.EngineID]map[string]string

	mu    sync.Mutex
	calls []Call
}

// NewMockInvoker creates a mock invoker with no translations.
func NewMockInvoker() *MockInvoker {
	return &MockInvoker{
		Translations: make(map[gotrans.EngineID]map[string]string),
	}
}

// Add scripts engine to return text for (lang, word).
func (m *MockInvoker) Add(engine gotrans.EngineID, lang, word, text string) *MockInvoker {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Translations[engine] == nil {
		m.Translations[engine] = make(map[string]string)
	}
	m.Translations[engine][lang+"/"+word] = text
	return m
}

// Invoke returns the scripted text or an EngineError.
func (m *MockInvoker) Invoke(ctx context.Context, engine gotrans.EngineID, lang, word string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Engine: engine, Lang: lang, Word: word})

	if text, ok := m.Translations[engine][lang+"/"+word]; ok {
		return text, nil
	}
	return "", &gotrans.EngineError{Engine: engine, Message: "no translation scripted"}
}

// Calls returns the recorded invocations in order.
func (m *MockInvoker) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of invocations of engine, or of all engines
// when engine is empty.
func (m *MockInvoker) CallCount(engine gotrans.EngineID) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if engine == "" {
		return len(m.calls)
	}
	n := 0
	for _, c := range m.calls {
		if c.Engine == engine {
			n++
		}
	}
	return n
}

// Reset clears the recorded calls.
func (m *MockInvoker) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Verify MockInvoker implements Invoker
var _ Invoker = (*MockInvoker)(nil)
