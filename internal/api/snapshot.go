package api

import (
	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/pipeline"
	"github.com/annel0/dungeon-gen/internal/vec"
)

// LevelSnapshot JSON-представление готового уровня
type LevelSnapshot struct {
	Params     pipeline.Params     `json:"params"`
	Summary    *pipeline.Summary   `json:"summary"`
	Sectors    []SectorSnapshot    `json:"sectors"`
	Rooms      []RoomSnapshot      `json:"rooms"`
	Connectors []ConnectorSnapshot `json:"connectors"`
	// Cells[y][x] итоговые коды клеток; только по запросу
	Cells [][]level.CellCode `json:"cells,omitempty"`
}

type SectorSnapshot struct {
	ID       level.SectorID `json:"id"`
	Parent   level.SectorID `json:"parent"`
	Position vec.Vec2       `json:"position"` // абсолютная
	Size     vec.Vec2       `json:"size"`
	Code     string         `json:"code"`
}

type RoomSnapshot struct {
	Sector      level.SectorID `json:"sector"`
	Type        string         `json:"type"`
	Requirement string         `json:"requirement,omitempty"`
	Doors       int            `json:"doors"`
	Props       int            `json:"props"`
	Enemies     int            `json:"enemies"`
}

type ConnectorSnapshot struct {
	From  level.SectorID `json:"from"`
	To    level.SectorID `json:"to"`
	Start vec.Vec2       `json:"start"`
	End   vec.Vec2       `json:"end"`
	Path  string         `json:"path,omitempty"`
}

// NewLevelSnapshot снимает состояние уровня
func NewLevelSnapshot(l *level.Level, p pipeline.Params, withCells bool) *LevelSnapshot {
	snap := &LevelSnapshot{
		Params:     p,
		Summary:    pipeline.Summarize(l),
		Sectors:    []SectorSnapshot{},
		Rooms:      []RoomSnapshot{},
		Connectors: []ConnectorSnapshot{},
	}

	for _, s := range l.Sectors() {
		var parent level.SectorID
		if ps := s.Parent(); ps != nil {
			parent = ps.ID
		}
		snap.Sectors = append(snap.Sectors, SectorSnapshot{
			ID:       s.ID,
			Parent:   parent,
			Position: s.AbsolutePosition(vec.Zero),
			Size:     s.Size,
			Code:     s.Code.String(),
		})
	}

	for _, r := range l.Rooms() {
		snap.Rooms = append(snap.Rooms, RoomSnapshot{
			Sector:      r.Sector,
			Type:        r.Type().String(),
			Requirement: string(r.Requirement),
			Doors:       r.Doors,
			Props:       len(r.Props),
			Enemies:     len(r.Enemies),
		})
	}

	for _, c := range l.Connectors() {
		path := make([]byte, 0, len(c.Path))
		for _, d := range c.Path {
			path = append(path, d.String()[0])
		}
		snap.Connectors = append(snap.Connectors, ConnectorSnapshot{
			From:  c.From,
			To:    c.To,
			Start: c.Start,
			End:   c.End,
			Path:  string(path),
		})
	}

	if withCells {
		grid := l.Grid()
		snap.Cells = make([][]level.CellCode, grid.Height())
		for y := range snap.Cells {
			row := make([]level.CellCode, grid.Width())
			for x := range row {
				row[x] = grid.GetCell(x, y, level.LayerAll)
			}
			snap.Cells[y] = row
		}
	}
	return snap
}
