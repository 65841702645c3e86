// internal/game/types.go
//
// Snapshot types returned to clients.
package game

import (
	"github.com/robalobadob/wordsearch/internal/gesture"
	"github.com/robalobadob/wordsearch/internal/grid"
)

// Status is the coarse state of a session.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusComplete Status = "complete"
)

// Snapshot is a point-in-time view of a session.
type Snapshot struct {
	ID        string            `json:"id"`
	PackID    string            `json:"packId"`
	Index     int               `json:"index"`
	Size      int               `json:"size"`
	Words     []string          `json:"words"`
	Grid      grid.Grid         `json:"grid"`
	Found     []string          `json:"found"`
	Segments  []gesture.Segment `json:"segments"`
	Status    Status            `json:"status"`
	ElapsedMs int64             `json:"elapsedMs"`
}
