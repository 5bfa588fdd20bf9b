package pipeline

import (
	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/vec"
)

// Summary краткая сводка готового уровня
type Summary struct {
	RunID      string   `json:"run_id"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Sectors    int      `json:"sectors"`
	Rooms      int      `json:"rooms"`
	Connectors int      `json:"connectors"`
	Doors      int      `json:"doors"`
	HallCells  int      `json:"hall_cells"`
	DoorCells  int      `json:"door_cells"`
	SpawnPoint vec.Vec2 `json:"spawn_point"`
}

// Summarize считает сводку по уровню
func Summarize(l *level.Level) *Summary {
	s := &Summary{
		RunID:      l.RunID,
		Width:      l.Width(),
		Height:     l.Height(),
		Sectors:    len(l.Sectors()),
		Rooms:      len(l.Rooms()),
		Connectors: len(l.Connectors()),
		HallCells:  l.Grid().Count(level.CellHall, level.LayerHall),
		DoorCells:  l.Grid().Count(level.CellDoor, level.LayerDoors),
		SpawnPoint: l.SpawnPoint,
	}
	for _, c := range l.Connectors() {
		if len(c.Path) == 0 {
			s.Doors++
		}
	}
	return s
}
