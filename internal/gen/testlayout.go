package gen

import (
	"fmt"
	"math/rand"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/vec"
	"github.com/annel0/dungeon-gen/internal/walker"
)

// TestLayoutMinSize минимальный размер уровня для фиксированной раскладки
const TestLayoutMinSize = 30

// TestLayout фиксированная раскладка для отладки: две соседние комнаты,
// коридор и комната с кубиком, соединенная коридором с первой.
type TestLayout struct{}

func (TestLayout) Name() string { return "test_layout" }

func (TestLayout) Start(l *level.Level, rng *rand.Rand) (Task, error) {
	if l.Width() < TestLayoutMinSize || l.Height() < TestLayoutMinSize {
		return nil, fmt.Errorf("%w: test layout needs at least %dx%d", level.ErrInvalidSector, TestLayoutMinSize, TestLayoutMinSize)
	}
	return &testLayoutTask{level: l, rng: rng}, nil
}

type testLayoutTask struct {
	level *level.Level
	rng   *rand.Rand
	first *level.Sector
	w     *walker.InverseKamikazeTargeted
	ticks int
}

func (t *testLayoutTask) Advance() (bool, error) {
	if t.w == nil {
		return false, t.place()
	}

	t.ticks++
	res := t.w.Walk()
	if !res.Terminated {
		if t.ticks > 4*(t.level.Width()+t.level.Height()) {
			return false, fmt.Errorf("corridor walker did not reach %v", t.w.Target())
		}
		return false, nil
	}

	c := res.Corridor
	if _, err := t.level.Connect(c.From, t.level.SectorAt(c.End).ID, c.Start, c.End, c.Path); err != nil {
		return false, fmt.Errorf("connect corridor: %w", err)
	}
	return true, nil
}

func (t *testLayoutTask) place() error {
	l := t.level

	first, err := l.NewSector(vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 10, Y: 10}, level.CellRoom, nil)
	if err != nil {
		return err
	}
	l.AddRoom(first)
	t.first = first

	for x := 11; x <= 19; x++ {
		l.SetCell(vec.Vec2{X: x, Y: 20}, level.CellHall, level.LayerAll, false)
	}
	for y := 20; y < 24; y++ {
		l.SetCell(vec.Vec2{X: 15, Y: y}, level.CellHall, level.LayerAll, false)
	}

	chase, err := l.NewSector(vec.Vec2{X: 20, Y: 15}, vec.Vec2{X: 10, Y: 10}, level.CellRoomChase, nil)
	if err != nil {
		return err
	}
	l.AddRoom(chase)

	w, err := walker.NewInverseKamikazeTargeted(l.Root(),
		vec.Vec2{X: 13, Y: 24}, vec.Vec2{X: 15, Y: 19}, vec.Vec2{X: 5, Y: 5},
		level.CellRoomDice, t.rng)
	if err != nil {
		return err
	}
	l.AddRoom(w.Room())
	t.w = w
	return nil
}
