package gen

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/vec"
	"github.com/zyedidia/generic/mapset"
)

// Doors ставит двери на границах секторов верхнего уровня, соприкасающихся
// с другими заселенными секторами, и записывает коннекторы.
type Doors struct {
	// RepeatConnectionsOnDifferentSides разрешает несколько дверей между
	// одной парой секторов, если они найдены с разных сторон за один проход.
	RepeatConnectionsOnDifferentSides bool
}

// NewDoors шаг с повторами на разных сторонах
func NewDoors() Doors {
	return Doors{RepeatConnectionsOnDifferentSides: true}
}

func (d Doors) Name() string { return "doors" }

// doorCandidate пара клеток двери в абсолютных координатах
type doorCandidate struct {
	from, to     vec.Vec2
	fromID, toID level.SectorID
}

// sectorPair неупорядоченная пара секторов
type sectorPair struct {
	a, b level.SectorID
}

func pairOf(a, b level.SectorID) sectorPair {
	if a > b {
		a, b = b, a
	}
	return sectorPair{a, b}
}

type doorsTask struct {
	level     *level.Level
	rng       *rand.Rand
	repeat    bool
	sectors   []*level.Sector
	next      int
	connected mapset.Set[sectorPair]
}

func (d Doors) Start(l *level.Level, rng *rand.Rand) (Task, error) {
	return &doorsTask{
		level:     l,
		rng:       rng,
		repeat:    d.RepeatConnectionsOnDifferentSides,
		sectors:   l.Root().Children(),
		connected: mapset.New[sectorPair](),
	}, nil
}

// Advance обрабатывает один сектор верхнего уровня
func (t *doorsTask) Advance() (bool, error) {
	if t.next >= len(t.sectors) {
		return true, nil
	}
	sec := t.sectors[t.next]
	t.next++

	if t.level.Sector(sec.ID) != nil {
		if err := t.processSector(sec); err != nil {
			return false, err
		}
	}
	return t.next >= len(t.sectors), nil
}

func (t *doorsTask) hasConnection(a, b level.SectorID) bool {
	return t.connected.Has(pairOf(a, b)) || t.level.HasConnector(a, b)
}

func (t *doorsTask) processSector(sec *level.Sector) error {
	candidates := make(map[level.SectorID]map[level.DirectionMask][]doorCandidate)

	outside := func(c level.NeighborComparison) bool {
		if sec.Contains(c.NeighborPosition) {
			return false
		}
		if c.NeighborCell <= level.CellEmpty || c.NeighborCell == level.CellHall {
			return false
		}
		abs := sec.AbsolutePosition(c.NeighborPosition)
		owner := t.level.SectorAt(abs)
		if owner.IsRoot() || owner.ID == sec.ID {
			return false
		}
		if t.hasConnection(sec.ID, owner.ID) {
			return false
		}

		byDir, ok := candidates[owner.ID]
		if !ok {
			byDir = make(map[level.DirectionMask][]doorCandidate)
			candidates[owner.ID] = byDir
		}
		byDir[c.Direction] = append(byDir[c.Direction], doorCandidate{
			from:   sec.AbsolutePosition(c.OriginalPosition),
			to:     abs,
			fromID: sec.ID,
			toID:   owner.ID,
		})
		return true
	}

	borderScan := func(it level.CellIteration) {
		p, size := it.Position, it.Sector.Size
		if p.X != 0 && p.X != size.X-1 && p.Y != 0 && p.Y != size.Y-1 {
			return
		}
		level.CheckNeighbors(it.Sector, p, outside, level.LayerRooms|level.LayerHall)
	}
	level.IterateSector(sec, []level.IterFunc{borderScan}, level.LayerRooms|level.LayerHall)

	return t.placeDoors(candidates)
}

func (t *doorsTask) placeDoors(candidates map[level.SectorID]map[level.DirectionMask][]doorCandidate) error {
	owners := make([]level.SectorID, 0, len(candidates))
	for id := range candidates {
		owners = append(owners, id)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })

	for _, owner := range owners {
		byDir := candidates[owner]
		dirs := make([]level.DirectionMask, 0, len(byDir))
		for dir := range byDir {
			dirs = append(dirs, dir)
		}
		sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })

		for _, dir := range dirs {
			list := byDir[dir]
			door := list[t.rng.Intn(len(list))]

			if !t.repeat && t.hasConnection(door.fromID, door.toID) {
				continue
			}

			t.level.SetCell(door.from, level.CellDoor, level.LayerAll, false)
			t.level.SetCell(door.to, level.CellDoor, level.LayerAll, false)
			t.connected.Put(pairOf(door.fromID, door.toID))

			if _, err := t.level.Connect(door.fromID, door.toID, door.from, door.to, nil); err != nil {
				return fmt.Errorf("connect %d-%d: %w", door.fromID, door.toID, err)
			}
		}
	}
	return nil
}
