package walker

import (
	"math/rand"
	"testing"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x, y int) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

func TestTargeted_ReachesTargetWithManhattanPath(t *testing.T) {
	l := level.New(30, 30)
	rng := rand.New(rand.NewSource(3))
	w := NewTargeted(l.Root(), v(2, 3), v(9, 12), rng)

	var res Result
	for i := 0; i < 100 && !res.Terminated; i++ {
		res = w.Walk()
	}

	require.True(t, res.Terminated, "ходок должен дойти до цели")
	require.NotNil(t, res.Corridor)
	assert.Equal(t, v(9, 12), w.Position())
	assert.Len(t, res.Corridor.Path, 7+9, "длина пути равна манхэттенскому расстоянию")
	assert.Equal(t, v(2, 3), res.Corridor.Start)
	assert.Equal(t, v(9, 12), res.Corridor.End)

	cells := (&level.Connector{Start: res.Corridor.Start, Path: res.Corridor.Path}).Cells()
	assert.Equal(t, v(9, 12), cells[len(cells)-1], "путь ведёт в цель")
	for _, p := range cells[:len(cells)-1] {
		assert.Equal(t, level.CellHall, l.GetCell(p, level.LayerAll), "клетка %v должна быть коридором", p)
	}
}

func TestTargeted_AlreadyAtTarget(t *testing.T) {
	l := level.New(10, 10)
	w := NewTargeted(l.Root(), v(4, 4), v(4, 4), rand.New(rand.NewSource(1)))

	res := w.Walk()
	assert.True(t, res.Terminated)
	assert.Empty(t, res.Corridor.Path)
}

func TestKamikaze_StaysInsideSector(t *testing.T) {
	l := level.New(40, 40)
	s, err := l.NewSector(v(10, 10), v(8, 8), level.CellEmpty, nil)
	require.NoError(t, err)

	w := NewKamikaze(s, v(4, 4), KamikazeConfig{Life: 1000, TurnChance: 0.3, RoomSize: v(2, 2)}, rand.New(rand.NewSource(11)))
	for i := 0; i < 500; i++ {
		w.Walk()
		assert.True(t, s.Contains(w.Position()), "ходок не покидает сектор")
	}

	for x := 0; x < 40; x++ {
		for y := 0; y < 40; y++ {
			if s.ContainsAbs(v(x, y)) {
				continue
			}
			assert.Equal(t, level.CellEmpty, l.GetCell(v(x, y), level.LayerAll), "запись за пределами сектора (%d,%d)", x, y)
		}
	}
}

func TestKamikaze_SpawnsNonOverlappingRooms(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		l := level.New(50, 50)
		rng := rand.New(rand.NewSource(seed))
		root := l.Root()

		var walkers []*Kamikaze
		for i := 0; i < 8; i++ {
			walkers = append(walkers, NewKamikaze(root, v(15+rng.Intn(20), 15+rng.Intn(20)), KamikazeConfig{
				Life:       3 + rng.Intn(10),
				TurnChance: 0.2,
				RoomSize:   v(3+rng.Intn(4), 3+rng.Intn(4)),
				RoomCode:   level.CellRoomItem,
			}, rng))
		}

		for tick := 0; tick < 10000 && len(walkers) > 0; tick++ {
			for i := 0; i < len(walkers); i++ {
				res := walkers[i].Walk()
				if !res.Terminated {
					continue
				}
				require.NotNil(t, res.Spawn)
				_, err := l.NewSector(res.Spawn.Pos, res.Spawn.Size, res.Spawn.Code, res.Spawn.Parent)
				require.NoError(t, err, "комната не должна пересекаться с соседями")
				walkers = append(walkers[:i], walkers[i+1:]...)
				i--
			}
		}

		children := root.Children()
		for i := range children {
			assert.True(t, vec.NewRect(vec.Zero, root.Size).ContainsRect(children[i].Rect()))
			for j := i + 1; j < len(children); j++ {
				assert.False(t, children[i].Rect().Overlaps(children[j].Rect()), "seed %d: комнаты %d и %d пересекаются", seed, children[i].ID, children[j].ID)
			}
		}
	}
}

func TestKamikaze_LifeDecrementsOnlyOnEmpty(t *testing.T) {
	l := level.New(10, 10)
	root := l.Root()
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			l.SetCell(v(x, y), level.CellHall, level.LayerAll, false)
		}
	}

	w := NewKamikaze(root, v(5, 5), KamikazeConfig{Life: 3, RoomSize: v(1, 1)}, rand.New(rand.NewSource(5)))
	for i := 0; i < 50; i++ {
		assert.False(t, w.Walk().Terminated)
	}
	assert.Equal(t, 3, w.Life(), "по коридору жизнь не тратится")
	assert.Equal(t, level.CellRoom, w.RoomCode())
}

func TestInverseKamikazeTargeted_SpawnsRoomAndCorridor(t *testing.T) {
	l := level.New(40, 40)
	first, err := l.NewSector(v(10, 10), v(10, 10), level.CellRoom, nil)
	require.NoError(t, err)

	w, err := NewInverseKamikazeTargeted(l.Root(), v(13, 24), v(15, 19), v(5, 5), level.CellRoomDice, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	require.NotNil(t, w.Room())
	assert.Equal(t, level.CellRoomDice, l.GetCell(v(13, 24), level.LayerAll))

	var res Result
	for i := 0; i < 100 && !res.Terminated; i++ {
		res = w.Walk()
	}
	require.True(t, res.Terminated)
	assert.Equal(t, w.Room().ID, res.Corridor.From)
	assert.Equal(t, first.ID, l.SectorAt(res.Corridor.End).ID)

	_, err = NewInverseKamikazeTargeted(l.Root(), v(12, 12), v(0, 0), v(3, 3), level.CellRoomDice, rand.New(rand.NewSource(9)))
	assert.ErrorIs(t, err, level.ErrSectorOverlap)
}
