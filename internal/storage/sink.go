package storage

import (
	"github.com/charmbracelet/log"
)

// BestScoreSink persists one game's best score in a Store.
// Storage failures are logged and never reach the game.
type BestScoreSink struct {
	store  *Store
	gameID string
	logger *log.Logger
}

// NewBestScoreSink returns a sink for gameID. A nil logger uses log's default.
func NewBestScoreSink(store *Store, gameID string, logger *log.Logger) *BestScoreSink {
	if logger == nil {
		logger = log.Default()
	}
	return &BestScoreSink{
		store:  store,
		gameID: gameID,
		logger: logger,
	}
}

// Load returns the stored best score, or 0 if it cannot be read.
func (s *BestScoreSink) Load() int {
	best, err := s.store.HighScore(s.gameID)
	if err != nil {
		s.logger.Warn("Could not load best score", "game", s.gameID, "error", err)
		return 0
	}
	return best
}

// Save raises the stored best score.
func (s *BestScoreSink) Save(score int) {
	if err := s.store.SaveBestScore(s.gameID, score); err != nil {
		s.logger.Warn("Could not save best score", "game", s.gameID, "score", score, "error", err)
	}
}
