package walker

import (
	"math/rand"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/vec"
)

// KamikazeConfig параметры ходока-камикадзе
type KamikazeConfig struct {
	Life       int
	TurnChance float64
	RoomSize   vec.Vec2
	RoomCode   level.CellCode
}

// Kamikaze бродит случайно, пока не кончится жизнь, затем взрывается
// комнатой, если для неё есть место.
type Kamikaze struct {
	base
	cfg  KamikazeConfig
	life int
}

// NewKamikaze создаёт ходока в локальной позиции pos сектора s
func NewKamikaze(s *level.Sector, pos vec.Vec2, cfg KamikazeConfig, rng *rand.Rand) *Kamikaze {
	if cfg.RoomCode == level.CellEmpty {
		cfg.RoomCode = level.CellRoom
	}
	return &Kamikaze{
		base: newBase(s, pos, rng),
		cfg:  cfg,
		life: cfg.Life,
	}
}

// Life оставшаяся жизнь
func (k *Kamikaze) Life() int { return k.life }

// RoomCode код комнаты, которую создаст ходок
func (k *Kamikaze) RoomCode() level.CellCode { return k.cfg.RoomCode }

// Walk делает шаг; при завершении возвращает запрос на комнату
func (k *Kamikaze) Walk() Result {
	if !k.step(k) {
		return Result{}
	}
	return Result{
		Terminated: true,
		Spawn: &Spawn{
			Parent: k.sector,
			Pos:    k.pos,
			Size:   k.cfg.RoomSize,
			Code:   k.cfg.RoomCode,
		},
	}
}

// nextPosition при выходе за сектор поворачивает по часовой стрелке
func (k *Kamikaze) nextPosition() vec.Vec2 {
	next := k.pos.Add(k.dir.Offset())
	for i := 0; i < len(level.Directions) && !k.sector.Contains(next); i++ {
		k.dir = k.dir.Rotate(1)
		next = k.pos.Add(k.dir.Offset())
	}
	return next
}

func (k *Kamikaze) onMoved() bool {
	if k.rng.Float64() < k.cfg.TurnChance {
		k.dir = k.dir.RandomTurn(k.rng)
	}

	if k.sector.GetCell(k.pos, level.LayerAll) == level.CellEmpty {
		k.life--
	}
	if k.life > 0 {
		return false
	}
	return k.roomFits()
}

// roomFits проверяет, что комната помещается в сектор и не пересекает
// уже созданные дочерние сектора
func (k *Kamikaze) roomFits() bool {
	box := vec.NewRect(k.pos, k.cfg.RoomSize)
	if !vec.NewRect(vec.Zero, k.sector.Size).ContainsRect(box) {
		return false
	}
	for _, child := range k.sector.Children() {
		if box.Overlaps(child.Rect()) {
			return false
		}
	}
	return true
}
