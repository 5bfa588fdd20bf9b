package walker

import (
	"fmt"
	"math/rand"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/vec"
)

// Targeted идёт от старта к цели, сокращая разрыв по x или y,
// и записывает путь.
type Targeted struct {
	base
	start  vec.Vec2
	target vec.Vec2
	path   []level.Direction
	from   level.SectorID
}

// NewTargeted создаёт ходока от pos к target (оба в координатах s)
func NewTargeted(s *level.Sector, pos, target vec.Vec2, rng *rand.Rand) *Targeted {
	return &Targeted{
		base:   newBase(s, pos, rng),
		start:  pos,
		target: target,
		from:   s.ID,
	}
}

// Target цель
func (t *Targeted) Target() vec.Vec2 { return t.target }

// Path пройденные направления
func (t *Targeted) Path() []level.Direction { return t.path }

// Walk делает шаг; по достижении цели возвращает коридор
func (t *Targeted) Walk() Result {
	if t.pos == t.target || t.step(t) {
		return Result{Terminated: true, Corridor: t.corridor()}
	}
	return Result{}
}

func (t *Targeted) corridor() *Corridor {
	return &Corridor{
		From:  t.from,
		Start: t.sector.AbsolutePosition(t.start),
		End:   t.sector.AbsolutePosition(t.target),
		Path:  append([]level.Direction(nil), t.path...),
	}
}

func (t *Targeted) nextPosition() vec.Vec2 {
	delta := t.target.Sub(t.pos)
	moveX := delta.X != 0
	if delta.X != 0 && delta.Y != 0 {
		moveX = t.rng.Float64() > 0.5
	}

	switch {
	case moveX && delta.X > 0:
		t.dir = level.Right
	case moveX:
		t.dir = level.Left
	case delta.Y > 0:
		t.dir = level.Up
	default:
		t.dir = level.Down
	}
	t.path = append(t.path, t.dir)
	return t.pos.Add(t.dir.Offset())
}

func (t *Targeted) onMoved() bool {
	return t.pos == t.target
}

// InverseKamikazeTargeted сначала ставит комнату в точке старта,
// затем прокладывает коридор к цели.
type InverseKamikazeTargeted struct {
	*Targeted
	room *level.Sector
}

// NewInverseKamikazeTargeted создаёт комнату size с кодом code в pos
// и ходока к target. Пересечение с соседями возвращает ошибку.
func NewInverseKamikazeTargeted(s *level.Sector, pos, target, size vec.Vec2, code level.CellCode, rng *rand.Rand) (*InverseKamikazeTargeted, error) {
	room, err := s.Level().NewSector(pos, size, code, s)
	if err != nil {
		return nil, fmt.Errorf("spawn room at %v: %w", pos, err)
	}

	t := NewTargeted(s, pos, target, rng)
	t.from = room.ID
	return &InverseKamikazeTargeted{Targeted: t, room: room}, nil
}

// Room сектор комнаты, созданной при старте
func (w *InverseKamikazeTargeted) Room() *level.Sector { return w.room }
