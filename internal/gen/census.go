package gen

import (
	"math/rand"

	"github.com/annel0/dungeon-gen/internal/level"
)

// Требования для входа в особые комнаты
const (
	RequirementBoss          level.RoomRequirement = "defeat_boss"
	RequirementDice          level.RoomRequirement = "roll_dice"
	RequirementBloodOath     level.RoomRequirement = "blood_oath"
	RequirementKillChallenge level.RoomRequirement = "kill_challenge"
	RequirementChase         level.RoomRequirement = "chase"
)

var requirements = map[level.CellCode]level.RoomRequirement{
	level.CellBossRoom:          RequirementBoss,
	level.CellRoomDice:          RequirementDice,
	level.CellRoomBloodOath:     RequirementBloodOath,
	level.CellRoomKillChallenge: RequirementKillChallenge,
	level.CellRoomChase:         RequirementChase,
}

// RoomCensus заполняет метаданные комнат: двери, пропы, врагов и
// требование на вход. Одна комната за шаг.
type RoomCensus struct{}

func (RoomCensus) Name() string { return "room_census" }

func (RoomCensus) Start(l *level.Level, _ *rand.Rand) (Task, error) {
	rooms := l.Rooms()
	next := 0
	return TaskFunc(func() (bool, error) {
		if next >= len(rooms) {
			return true, nil
		}
		CountRoom(rooms[next])
		next++
		return next >= len(rooms), nil
	}), nil
}

// CountRoom пересчитывает метаданные одной комнаты
func CountRoom(r *level.Room) {
	r.Doors = 0
	r.Props = r.Props[:0]
	r.Enemies = r.Enemies[:0]
	r.Requirement = level.RequirementNone

	s := r.SectorRef()
	if s == nil {
		return
	}
	r.Requirement = requirements[s.Code]

	level.IterateSector(s, []level.IterFunc{func(it level.CellIteration) {
		abs := s.AbsolutePosition(it.Position)
		if s.GetCell(it.Position, level.LayerDoors) == level.CellDoor {
			r.Doors++
		}
		if s.GetCell(it.Position, level.LayerProps) != level.CellEmpty {
			r.Props = append(r.Props, abs)
		}
		if s.GetCell(it.Position, level.LayerEnemies) != level.CellEmpty {
			r.Enemies = append(r.Enemies, abs)
		}
	}}, level.LayerAll)
}
