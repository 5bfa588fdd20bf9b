package level

import (
	"fmt"

	"github.com/annel0/dungeon-gen/internal/vec"
	"github.com/google/uuid"
)

// Level единственный источник правды одного прогона генерации: сетка,
// арена секторов с корнем, коннекторы и список комнат.
// Level не предназначен для конкурентного доступа.
type Level struct {
	RunID       string
	SpawnPoint  vec.Vec2
	SpawnSector SectorID

	grid       *Grid
	sectors    []*Sector // индекс = SectorID, 0 не используется
	connectors []*Connector
	rootID     SectorID
	rooms      []*Room
}

// New создаёт пустой уровень с корневым сектором на всю сетку
func New(width, height int) *Level {
	l := &Level{
		RunID:      uuid.NewString(),
		grid:       NewGrid(width, height),
		sectors:    []*Sector{nil},
		connectors: []*Connector{nil},
	}
	root := l.allocSector(vec.Zero, vec.Vec2{X: width, Y: height}, CellEmpty, NoSector)
	l.rootID = root.ID
	l.SpawnSector = root.ID
	root.Fill(CellEmpty, LayerAll)
	return l
}

// Grid прямой доступ к хранилищу (только для чтения снаружи пакета)
func (l *Level) Grid() *Grid { return l.grid }

// Size размер уровня
func (l *Level) Size() vec.Vec2 { return l.grid.Size() }

// Width ширина уровня
func (l *Level) Width() int { return l.grid.Width() }

// Height высота уровня
func (l *Level) Height() int { return l.grid.Height() }

// Root корневой сектор
func (l *Level) Root() *Sector { return l.sectors[l.rootID] }

// Sector возвращает живой сектор по ID или nil
func (l *Level) Sector(id SectorID) *Sector {
	if id <= NoSector || int(id) >= len(l.sectors) {
		return nil
	}
	return l.sectors[id]
}

// Sectors все живые сектора в порядке создания
func (l *Level) Sectors() []*Sector {
	out := make([]*Sector, 0, len(l.sectors))
	for _, s := range l.sectors {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Connector возвращает коннектор по ID или nil
func (l *Level) Connector(id ConnectorID) *Connector {
	if id <= 0 || int(id) >= len(l.connectors) {
		return nil
	}
	return l.connectors[id]
}

// Connectors все живые коннекторы
func (l *Level) Connectors() []*Connector {
	out := make([]*Connector, 0, len(l.connectors))
	for _, c := range l.connectors {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// GetCell читает клетку по абсолютным координатам
func (l *Level) GetCell(p vec.Vec2, layer Layer) CellCode {
	return l.grid.GetCell(p.X, p.Y, layer)
}

// SetCell пишет клетку по абсолютным координатам; вне сетки ничего не делает
func (l *Level) SetCell(p vec.Vec2, code CellCode, layer Layer, overwrite bool) {
	if !l.grid.Contains(p.X, p.Y) {
		return
	}
	l.grid.SetCell(p.X, p.Y, code, layer, overwrite)
}

// SectorAt возвращает сектор верхнего уровня, содержащий точку, иначе корень
func (l *Level) SectorAt(p vec.Vec2) *Sector {
	for _, s := range l.Root().Children() {
		if s.ContainsAbs(p) {
			return s
		}
	}
	return l.Root()
}

// NewSector создаёт сектор в координатах parent (nil означает корень)
// и сразу заливает его площадь кодом.
func (l *Level) NewSector(pos, size vec.Vec2, code CellCode, parent *Sector) (*Sector, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: size %v", ErrInvalidSector, size)
	}
	if !code.Valid() {
		return nil, fmt.Errorf("%w: code %v", ErrInvalidSector, code)
	}
	if parent == nil {
		parent = l.Root()
	} else if l.Sector(parent.ID) != parent {
		return nil, fmt.Errorf("%w: parent %d", ErrUnknownSector, parent.ID)
	}

	box := vec.NewRect(pos, size)
	for _, sibling := range parent.Children() {
		if box.Overlaps(sibling.Rect()) {
			return nil, fmt.Errorf("%w: %v intersects sector %d", ErrSectorOverlap, box, sibling.ID)
		}
	}

	s := l.allocSector(pos, size, code, parent.ID)
	parent.addChild(s.ID)
	s.Fill(code, LayerAll)
	return s, nil
}

func (l *Level) allocSector(pos, size vec.Vec2, code CellCode, parent SectorID) *Sector {
	s := &Sector{
		ID:     SectorID(len(l.sectors)),
		Pos:    pos,
		Size:   size,
		Code:   code,
		level:  l,
		parent: parent,
	}
	l.sectors = append(l.sectors, s)
	return s
}

// DestroySector очищает площадь сектора, разрушает его коннекторы,
// отцепляет от родителя и удаляет связанную комнату. Потомки уничтожаются
// вместе с ним.
func (l *Level) DestroySector(id SectorID) error {
	s := l.Sector(id)
	if s == nil {
		return fmt.Errorf("%w: %d", ErrUnknownSector, id)
	}
	if s.IsRoot() {
		return fmt.Errorf("%w: root sector cannot be destroyed", ErrInvalidSector)
	}

	for _, child := range s.Children() {
		if err := l.DestroySector(child.ID); err != nil {
			return err
		}
	}

	s.clear()
	if parent := s.Parent(); parent != nil {
		parent.removeChild(s.ID)
	}
	for _, c := range s.Connectors() {
		l.DestroyConnector(c.ID)
	}

	l.retractRooms(s.ID)
	if l.SpawnSector == s.ID {
		l.SpawnSector = l.rootID
	}
	l.sectors[s.ID] = nil
	return nil
}

// Connect создаёт коннектор между двумя секторами
func (l *Level) Connect(from, to SectorID, start, end vec.Vec2, path []Direction) (*Connector, error) {
	a, b := l.Sector(from), l.Sector(to)
	if a == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSector, from)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSector, to)
	}

	c := &Connector{
		ID:    ConnectorID(len(l.connectors)),
		From:  from,
		To:    to,
		Start: start,
		End:   end,
		Path:  append([]Direction(nil), path...),
	}
	l.connectors = append(l.connectors, c)
	a.connectors = append(a.connectors, c.ID)
	if b != a {
		b.connectors = append(b.connectors, c.ID)
	}
	return c, nil
}

// DestroyConnector удаляет коннектор с обоих концов и возвращает в Empty
// клетки коридора, которые все еще читаются как Hall.
func (l *Level) DestroyConnector(id ConnectorID) {
	c := l.Connector(id)
	if c == nil {
		return
	}
	if from := l.Sector(c.From); from != nil {
		from.removeConnector(id)
	}
	if to := l.Sector(c.To); to != nil {
		to.removeConnector(id)
	}

	for _, p := range c.Cells() {
		if l.GetCell(p, LayerAll) == CellHall {
			l.SetCell(p, CellEmpty, LayerHall, true)
		}
	}
	l.connectors[id] = nil
}

// HasConnector проверяет наличие коннектора между парой секторов
func (l *Level) HasConnector(a, b SectorID) bool {
	s := l.Sector(a)
	if s == nil {
		return false
	}
	for _, c := range s.Connectors() {
		if c.Joins(a, b) {
			return true
		}
	}
	return false
}

// AddRoom регистрирует комнату для сектора
func (l *Level) AddRoom(sector *Sector) *Room {
	r := &Room{Sector: sector.ID, level: l}
	l.rooms = append(l.rooms, r)
	return r
}

// RemoveRoom убирает комнату из списка
func (l *Level) RemoveRoom(r *Room) {
	for i, room := range l.rooms {
		if room == r {
			l.rooms = append(l.rooms[:i], l.rooms[i+1:]...)
			return
		}
	}
}

// Rooms список комнат уровня
func (l *Level) Rooms() []*Room {
	return l.rooms
}

// RoomFor возвращает комнату сектора или nil
func (l *Level) RoomFor(id SectorID) *Room {
	for _, r := range l.rooms {
		if r.Sector == id {
			return r
		}
	}
	return nil
}

func (l *Level) retractRooms(id SectorID) {
	kept := l.rooms[:0]
	for _, r := range l.rooms {
		if r.Sector != id {
			kept = append(kept, r)
		}
	}
	l.rooms = kept
}
