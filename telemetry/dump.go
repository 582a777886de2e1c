package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DumpVersion is incremented when the dump format changes.
const DumpVersion = 1

// StateDump is a point-in-time record of a session, written next to a
// bookmark so the moment can be inspected later.
type StateDump struct {
	Version  int             `json:"version"`
	RNGSeed  int64           `json:"rng_seed"`
	Tick     int64           `json:"tick"`
	Bookmark *Bookmark       `json:"bookmark,omitempty"`
	State    json.RawMessage `json:"state"`
}

// NewStateDump encodes state as JSON and wraps it in a dump.
func NewStateDump(seed, tick int64, bookmark *Bookmark, state any) (*StateDump, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return &StateDump{
		Version:  DumpVersion,
		RNGSeed:  seed,
		Tick:     tick,
		Bookmark: bookmark,
		State:    raw,
	}, nil
}

// SaveStateDump writes a dump to dir and returns the file path.
func SaveStateDump(dump *StateDump, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create dump dir: %w", err)
	}

	name := fmt.Sprintf("state_%d", dump.Tick)
	if dump.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(dump.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("state_%d_%s", dump.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal dump: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write dump: %w", err)
	}
	return path, nil
}
