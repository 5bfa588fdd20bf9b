package level

import "github.com/annel0/dungeon-gen/internal/vec"

// RoomRequirement условие входа в комнату; пустая строка означает
// свободный вход.
type RoomRequirement string

const RequirementNone RoomRequirement = ""

// Room игровая обертка над сектором
type Room struct {
	Sector      SectorID
	Props       []vec.Vec2
	Enemies     []vec.Vec2
	Requirement RoomRequirement
	Doors       int

	level *Level
}

// SectorRef возвращает сектор комнаты (nil, если сектор уничтожен)
func (r *Room) SectorRef() *Sector {
	return r.level.Sector(r.Sector)
}

// Position позиция сектора комнаты
func (r *Room) Position() vec.Vec2 {
	if s := r.SectorRef(); s != nil {
		return s.Pos
	}
	return vec.Zero
}

// Size размер сектора комнаты
func (r *Room) Size() vec.Vec2 {
	if s := r.SectorRef(); s != nil {
		return s.Size
	}
	return vec.Zero
}

// Type код комнаты
func (r *Room) Type() CellCode {
	if s := r.SectorRef(); s != nil {
		return s.Code
	}
	return CellEmpty
}
