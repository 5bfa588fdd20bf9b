package gen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/logging"
	"github.com/annel0/dungeon-gen/internal/util"
	"github.com/annel0/dungeon-gen/internal/vec"
	"github.com/annel0/dungeon-gen/internal/walker"
)

// roomWeights веса типов комнат для обычных ходоков
var roomWeights = []struct {
	code   level.CellCode
	weight int
}{
	{level.CellRoomEnemies, 50},
	{level.CellRoomItem, 10},
	{level.CellRoomKillChallenge, 10},
	{level.CellRoomBloodOath, 5},
	{level.CellRoomDice, 5},
	{level.CellRoomChase, 5},
}

// Walkers прокладывает коридоры ходоками-камикадзе, которые в конце
// пути превращаются в комнаты. Последний ходок строит комнату босса.
type Walkers struct {
	// MaxTicks ограничивает число тиков; 0 означает 64*w*h
	MaxTicks int
}

// WalkerPlan параметры, вычисленные из размера уровня
type WalkerPlan struct {
	Count      int
	Life       int
	TurnChance float64
	RoomSize   vec.Vec2
}

// PlanWalkers считает число ходоков, жизнь, шанс поворота и размер комнаты
func PlanWalkers(size vec.Vec2) WalkerPlan {
	hip := size.X
	if size.Y > hip {
		hip = size.Y
	}
	n := int(math.Round(float64(hip) / 2.5))
	if n < 1 {
		n = 1
	}
	return WalkerPlan{
		Count:      n,
		Life:       n,
		TurnChance: math.Max(0.15, 0.25/(float64(hip)/25.0)),
		RoomSize:   size.Scale(2).Div(n),
	}
}

func (w Walkers) Name() string { return "walkers" }

func (w Walkers) Start(l *level.Level, rng *rand.Rand) (Task, error) {
	plan := PlanWalkers(l.Size())
	maxTicks := w.MaxTicks
	if maxTicks <= 0 {
		maxTicks = 64 * l.Width() * l.Height()
	}

	bag := util.NewShuffleBag[level.CellCode](rng)
	for _, rw := range roomWeights {
		bag.Add(rw.code, rw.weight)
	}

	t := &walkersTask{
		level:    l,
		maxTicks: maxTicks,
		log:      logging.GetGenLogger(),
	}
	for i := 0; i < plan.Count-1; i++ {
		code, _ := bag.Next()
		t.walkers = append(t.walkers, newRoomWalker(l, plan, code, rng))
	}
	t.walkers = append(t.walkers, newRoomWalker(l, plan, level.CellBossRoom, rng))

	t.log.Debug("🚶 walkers: %d, life %d, turn %.3f, room %v", plan.Count, plan.Life, plan.TurnChance, plan.RoomSize)
	return t, nil
}

func newRoomWalker(l *level.Level, plan WalkerPlan, code level.CellCode, rng *rand.Rand) *walker.Kamikaze {
	size := l.Size()
	pos := vec.Vec2{
		X: randRange(rng, int(float64(size.X)*0.3), int(float64(size.X)*0.7)),
		Y: randRange(rng, int(float64(size.Y)*0.3), int(float64(size.Y)*0.7)),
	}

	lifeMin := plan.Life / 2
	if lifeMin < 2 {
		lifeMin = 2
	}
	room := vec.Vec2{
		X: randRange(rng, plan.RoomSize.X/2, plan.RoomSize.X),
		Y: randRange(rng, plan.RoomSize.Y/2, plan.RoomSize.Y),
	}
	if room.X < 1 {
		room.X = 1
	}
	if room.Y < 1 {
		room.Y = 1
	}

	return walker.NewKamikaze(l.Root(), pos, walker.KamikazeConfig{
		Life:       randRange(rng, lifeMin, plan.Life+1),
		TurnChance: plan.TurnChance + randFloat(rng, -0.05, 0.1),
		RoomSize:   room,
		RoomCode:   code,
	}, rng)
}

type walkersTask struct {
	level    *level.Level
	walkers  []*walker.Kamikaze
	ticks    int
	maxTicks int
	log      *logging.Logger
}

// Advance один тик: каждый активный ходок делает шаг
func (t *walkersTask) Advance() (bool, error) {
	if len(t.walkers) == 0 {
		return true, nil
	}
	if t.ticks >= t.maxTicks {
		t.log.Warn("⚠️ walkers: tick budget %d exhausted, dropping %d walkers", t.maxTicks, len(t.walkers))
		t.walkers = nil
		return true, nil
	}
	t.ticks++

	for i := 0; i < len(t.walkers); i++ {
		res := t.walkers[i].Walk()
		if !res.Terminated {
			continue
		}
		if err := t.spawn(res.Spawn); err != nil {
			return false, err
		}
		t.walkers = append(t.walkers[:i], t.walkers[i+1:]...)
		i--
	}
	return len(t.walkers) == 0, nil
}

func (t *walkersTask) spawn(s *walker.Spawn) error {
	if s == nil {
		return nil
	}
	sec, err := t.level.NewSector(s.Pos, s.Size, s.Code, s.Parent)
	if err != nil {
		return fmt.Errorf("spawn room %v at %v: %w", s.Code, s.Pos, err)
	}
	t.level.AddRoom(sec)
	t.log.Debug("🏠 room %d %v at %v size %v", sec.ID, s.Code, s.Pos, s.Size)
	return nil
}
