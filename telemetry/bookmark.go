package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPoachingWave   BookmarkType = "poaching_wave"
	BookmarkHappinessCrash BookmarkType = "happiness_crash"
	BookmarkCleanDefense   BookmarkType = "clean_defense"
	BookmarkLastStand      BookmarkType = "last_stand"
	BookmarkSessionLost    BookmarkType = "session_lost"
)

// Bookmark marks a moment worth revisiting.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Time        float64      `csv:"time" json:"time"`
	Session     int          `csv:"session" json:"session"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"time", b.Time,
		"session", b.Session,
		"description", b.Description,
	)
}

// BookmarkDetector watches window stats for notable swings.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	crashDrop float64 // Happiness drop below the rolling mean that counts as a crash
	waveCount int     // Captures in one window that count as a wave

	lastAlive   int
	lastSession int
}

// NewBookmarkDetector creates a detector with the given history size and thresholds.
func NewBookmarkDetector(historySize int, crashDrop float64, waveCount int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	if waveCount < 1 {
		waveCount = 1
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		crashDrop:   crashDrop,
		waveCount:   waveCount,
		lastAlive:   -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	if stats.Session != bd.lastSession {
		// A new session starts from a full roster; old history no longer applies.
		bd.historyIdx = 0
		bd.historyFull = false
		bd.lastAlive = -1
		bd.lastSession = stats.Session
	}

	var bookmarks []Bookmark
	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkPoachingWave,
		bd.checkHappinessCrash,
		bd.checkCleanDefense,
		bd.checkLastStand,
		bd.checkSessionLost,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	bd.lastAlive = stats.Alive
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) bookmark(t BookmarkType, stats WindowStats, format string, args ...any) *Bookmark {
	return &Bookmark{
		Type:        t,
		Time:        stats.WindowEnd,
		Session:     stats.Session,
		Description: fmt.Sprintf(format, args...),
	}
}

func (bd *BookmarkDetector) checkPoachingWave(stats WindowStats) *Bookmark {
	if stats.Captures < bd.waveCount {
		return nil
	}
	return bd.bookmark(BookmarkPoachingWave, stats,
		"%d animals captured in one window (%d still free)", stats.Captures, stats.Alive)
}

func (bd *BookmarkDetector) checkHappinessCrash(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.Alive == 0 {
		return nil
	}

	means := make([]float64, 0, len(history))
	for _, h := range history {
		if h.Alive > 0 {
			means = append(means, h.HappinessMean)
		}
	}
	if len(means) < 3 {
		return nil
	}

	avg := stat.Mean(means, nil)
	if avg-stats.HappinessMean < bd.crashDrop {
		return nil
	}
	return bd.bookmark(BookmarkHappinessCrash, stats,
		"Mean happiness %.1f is %.1f below the recent average %.1f", stats.HappinessMean, avg-stats.HappinessMean, avg)
}

func (bd *BookmarkDetector) checkCleanDefense(stats WindowStats) *Bookmark {
	if stats.Interceptions < 2 || stats.Captures > 0 {
		return nil
	}
	return bd.bookmark(BookmarkCleanDefense, stats,
		"%d poachers stopped with no captures", stats.Interceptions)
}

func (bd *BookmarkDetector) checkLastStand(stats WindowStats) *Bookmark {
	if stats.Alive == 0 || stats.Alive > 2 || bd.lastAlive <= 2 {
		return nil
	}
	return bd.bookmark(BookmarkLastStand, stats,
		"Only %d animals left (was %d)", stats.Alive, bd.lastAlive)
}

func (bd *BookmarkDetector) checkSessionLost(stats WindowStats) *Bookmark {
	if stats.GameOvers == 0 {
		return nil
	}
	return bd.bookmark(BookmarkSessionLost, stats,
		"Session lost at %.0fs of play with score %d", stats.GameTime, stats.Score)
}
