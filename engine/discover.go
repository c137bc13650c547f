package engine

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ZaguanLabs/gotrans"
)

// Discover lists the engines supported by the translate-shell binary by
// running "<binary> -S". The order of the output is kept.
func Discover(ctx context.Context, binary string) ([]gotrans.EngineID, error) {
	if binary == "" {
		binary = DefaultBinary
	}

	// #nosec G204 - binary comes from operator configuration
	out, err := exec.CommandContext(ctx, binary, "-S").Output()
	if err != nil {
		return nil, fmt.Errorf("listing engines with %s: %w", binary, err)
	}

	return ParseEngineList(string(out)), nil
}

// ParseEngineList extracts engine ids from "trans -S" output. Tokens are
// whitespace separated; the "*" marker of the default engine is dropped, as
// are repeated ids.
func ParseEngineList(output string) []gotrans.EngineID {
	var ids []gotrans.EngineID
	seen := make(map[string]bool)

	for _, field := range strings.Fields(output) {
		field = strings.TrimSpace(field)
		if field == "" || strings.HasPrefix(field, "*") || seen[field] {
			continue
		}
		seen[field] = true
		ids = append(ids, gotrans.EngineID(field))
	}

	return ids
}
