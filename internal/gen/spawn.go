package gen

import (
	"math/rand"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/logging"
	"github.com/annel0/dungeon-gen/internal/vec"
)

// SpawnPoint выбирает точку появления игрока: ближайшую к центру
// непустую клетку, обходя квадратные кольца растущего радиуса.
type SpawnPoint struct{}

func (SpawnPoint) Name() string { return "spawn_point" }

func (SpawnPoint) Start(l *level.Level, _ *rand.Rand) (Task, error) {
	return TaskFunc(func() (bool, error) {
		p, ok := FindSpawnPoint(l)
		if !ok {
			logging.GetGenLogger().Warn("⚠️ spawn point: no populated cell, using center %v", p)
		} else {
			l.SetCell(p, level.CellPlayerSpawn, level.LayerHall, false)
		}
		l.SpawnPoint = p
		l.SpawnSector = l.SectorAt(p).ID
		return true, nil
	}), nil
}

// FindSpawnPoint ищет непустую клетку кольцами вокруг центра. Если такой
// нет, возвращает центр и false.
func FindSpawnPoint(l *level.Level) (vec.Vec2, bool) {
	center := l.Size().Div(2)
	if occupied(l, center) {
		return center, true
	}

	maxRadius := l.Width()
	if l.Height() > maxRadius {
		maxRadius = l.Height()
	}
	for r := 1; r <= maxRadius; r++ {
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if dx != -r && dx != r && dy != -r && dy != r {
					continue
				}
				p := center.Add(vec.Vec2{X: dx, Y: dy})
				if occupied(l, p) {
					return p, true
				}
			}
		}
	}
	return center, false
}

func occupied(l *level.Level, p vec.Vec2) bool {
	c := l.GetCell(p, level.LayerAll)
	return c != level.CellEmpty && c != level.CellError
}
