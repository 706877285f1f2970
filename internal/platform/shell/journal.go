// Package shell holds what the terminal and window front ends share:
// the volume control they drive and the journal that logs game events
// and records finished sessions.
package shell

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dagyiman/internal/core"
	"github.com/vovakirdan/dagyiman/internal/storage"
)

// Mixer is the volume control exposed in the menus. *audio.Music implements it.
type Mixer interface {
	VolumeUp()
	VolumeDown()
	SetVolume(percent int)
	ToggleMute() bool
	Volume() int
	Muted() bool
}

// Journal logs game events and saves the score of every session that
// ended in death with a positive score. It never feeds back into the game.
type Journal struct {
	store  *storage.Store // nil when scores are unavailable
	logger *log.Logger
	mapID  string
	high   int
}

// NewJournal creates a journal for one map. store may be nil.
func NewJournal(store *storage.Store, logger *log.Logger, mapID string) *Journal {
	if logger == nil {
		logger = log.Default()
	}
	j := &Journal{store: store, logger: logger, mapID: mapID}
	j.refresh()
	return j
}

// HighScore returns the best recorded score on the map, as of the last
// return to the menu.
func (j *Journal) HighScore() int {
	return j.high
}

// Record handles one event from a StepResult.
func (j *Journal) Record(ev core.Event) {
	switch e := ev.(type) {
	case core.PhaseEvent:
		j.logger.Debug("phase", "from", e.From, "to", e.To)
		if e.To == core.PhaseMenu {
			j.refresh()
		}

	case core.ScoreEvent:
		j.logger.Debug("medicine collected", "score", e.Total)

	case core.LivesEvent:
		if e.Hit {
			j.logger.Info("hit by a chair", "lives", e.Total)
		} else {
			j.logger.Debug("ambulance collected", "lives", e.Total)
		}

	case core.FatalityEvent:
		j.logger.Info("fatality", "session", e.SessionID, "score", e.FinalScore)

	case core.SessionEndEvent:
		j.logger.Info("session ended",
			"session", e.SessionID,
			"map", e.MapID,
			"score", e.FinalScore,
			"ticks", e.Ticks,
			"cancelled", e.Cancelled,
		)
		j.save(e)

	case core.ConfigErrorEvent:
		j.logger.Error("cannot start session", "err", e.Err)
	}
}

func (j *Journal) save(e core.SessionEndEvent) {
	if j.store == nil || e.Cancelled || e.FinalScore <= 0 {
		return
	}
	_, err := j.store.SaveScore(storage.ScoreEntry{
		MapID:     e.MapID,
		SessionID: e.SessionID,
		Score:     e.FinalScore,
		Ticks:     e.Ticks,
	})
	if err != nil {
		j.logger.Warn("score not saved", "err", err)
	}
}

func (j *Journal) refresh() {
	if j.store == nil {
		return
	}
	high, err := j.store.HighScore(j.mapID)
	if err != nil {
		j.logger.Warn("cannot read high score", "err", err)
		return
	}
	j.high = high
}
