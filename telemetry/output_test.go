package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/sanctuary/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	// Nil manager is a no-op
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("WriteTelemetry on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
}

func TestOutputManagerWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for i := 1; i <= 2; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEnd: float64(i * 10), Alive: 14}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{}, 10); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkLastStand, Time: 20, Description: "two left"}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header plus 2 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,session,game_time") {
		t.Errorf("unexpected header %q", lines[0])
	}

	data, err = os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "last_stand") {
		t.Errorf("bookmarks.csv missing row:\n%s", data)
	}

	data, err = os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines = strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || lines[0] != "window_end,phase,avg_us,min_us,max_us,share_pct" || !strings.HasPrefix(lines[1], "10,tick,") {
		t.Errorf("unexpected perf.csv:\n%s", data)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}

func TestStateDumpRoundtrip(t *testing.T) {
	state := map[string]any{"currency": 950, "state": "PLAYING"}
	bm := &Bookmark{Type: BookmarkPoachingWave, Time: 40, Session: 1}

	dump, err := NewStateDump(42, 2400, bm, state)
	if err != nil {
		t.Fatalf("NewStateDump: %v", err)
	}

	path, err := SaveStateDump(dump, t.TempDir())
	if err != nil {
		t.Fatalf("SaveStateDump: %v", err)
	}
	if !strings.HasSuffix(path, "state_2400_poaching_wave.json") {
		t.Errorf("unexpected dump path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var loaded StateDump
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("decoding dump: %v", err)
	}
	if loaded.Version != DumpVersion || loaded.RNGSeed != 42 || loaded.Tick != 2400 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkPoachingWave {
		t.Errorf("bookmark not preserved: %+v", loaded.Bookmark)
	}

	// The file is indented, so compare decoded values rather than bytes.
	var got map[string]any
	if err := json.Unmarshal(loaded.State, &got); err != nil {
		t.Fatalf("decoding state: %v", err)
	}
	if got["currency"] != float64(950) || got["state"] != "PLAYING" {
		t.Errorf("state not preserved: %v", got)
	}
}
