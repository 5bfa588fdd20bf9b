package level

import (
	"sort"

	"github.com/annel0/dungeon-gen/internal/vec"
	"github.com/zyedidia/generic/mapset"
)

// SectorID идентификатор сектора в арене уровня
type SectorID int

// NoSector отсутствие сектора (родитель корня)
const NoSector SectorID = 0

// Sector прямоугольная область в координатах родителя. Сектор не хранит
// клеток: чтение и запись всегда проходят по цепочке родителей в общую
// сетку уровня.
type Sector struct {
	ID   SectorID
	Pos  vec.Vec2
	Size vec.Vec2
	Code CellCode

	level      *Level
	parent     SectorID
	children   []SectorID
	connectors []ConnectorID
}

// Level уровень, которому принадлежит сектор
func (s *Sector) Level() *Level {
	return s.level
}

// IsRoot сообщает, является ли сектор корнем
func (s *Sector) IsRoot() bool {
	return s.parent == NoSector
}

// Parent возвращает родителя (nil для корня)
func (s *Sector) Parent() *Sector {
	if s.parent == NoSector {
		return nil
	}
	return s.level.Sector(s.parent)
}

// Children дочерние сектора в порядке создания
func (s *Sector) Children() []*Sector {
	out := make([]*Sector, 0, len(s.children))
	for _, id := range s.children {
		if c := s.level.Sector(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Connectors коннекторы, касающиеся сектора
func (s *Sector) Connectors() []*Connector {
	out := make([]*Connector, 0, len(s.connectors))
	for _, id := range s.connectors {
		if c := s.level.Connector(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Rect прямоугольник сектора в координатах родителя
func (s *Sector) Rect() vec.Rect {
	return vec.NewRect(s.Pos, s.Size)
}

// AbsoluteRect прямоугольник сектора в координатах уровня
func (s *Sector) AbsoluteRect() vec.Rect {
	return vec.NewRect(s.AbsolutePosition(vec.Zero), s.Size)
}

// Contains проверяет локальную точку на попадание в [0, Size)
func (s *Sector) Contains(local vec.Vec2) bool {
	return local.InBox(vec.Zero, s.Size)
}

// ContainsAbs проверяет абсолютную точку
func (s *Sector) ContainsAbs(abs vec.Vec2) bool {
	return s.AbsoluteRect().Contains(abs)
}

// AbsolutePosition переводит локальную точку в координаты уровня
func (s *Sector) AbsolutePosition(local vec.Vec2) vec.Vec2 {
	p := s.Pos.Add(local)
	if parent := s.Parent(); parent != nil {
		return parent.AbsolutePosition(p)
	}
	return p
}

// GetCell читает клетку по локальным координатам. Вне сектора CellError.
func (s *Sector) GetCell(local vec.Vec2, layer Layer) CellCode {
	if !s.Contains(local) {
		return CellError
	}
	p := s.Pos.Add(local)
	if parent := s.Parent(); parent != nil {
		return parent.GetCell(p, layer)
	}
	return s.level.grid.GetCell(p.X, p.Y, layer)
}

// SetCell пишет клетку по локальным координатам. Вне сектора ничего не делает.
func (s *Sector) SetCell(local vec.Vec2, code CellCode, layer Layer, overwrite bool) {
	if !s.Contains(local) {
		return
	}
	p := s.Pos.Add(local)
	if parent := s.Parent(); parent != nil {
		parent.SetCell(p, code, layer, overwrite)
		return
	}
	s.level.grid.SetCell(p.X, p.Y, code, layer, overwrite)
}

// Fill перезаписывает всю площадь сектора кодом и запоминает его
func (s *Sector) Fill(code CellCode, layer Layer) {
	for x := 0; x < s.Size.X; x++ {
		for y := 0; y < s.Size.Y; y++ {
			s.SetCell(vec.Vec2{X: x, Y: y}, code, layer, true)
		}
	}
	s.Code = code
}

// resolve переводит локальную точку в абсолютную, проверяя границы
// каждого сектора цепочки
func (s *Sector) resolve(local vec.Vec2) (vec.Vec2, bool) {
	if !s.Contains(local) {
		return vec.Zero, false
	}
	p := s.Pos.Add(local)
	if parent := s.Parent(); parent != nil {
		return parent.resolve(p)
	}
	return p, s.level.grid.Contains(p.X, p.Y)
}

// clear сбрасывает площадь сектора во всех слоях
func (s *Sector) clear() {
	for x := 0; x < s.Size.X; x++ {
		for y := 0; y < s.Size.Y; y++ {
			if p, ok := s.resolve(vec.Vec2{X: x, Y: y}); ok {
				s.level.grid.Clear(p.X, p.Y)
			}
		}
	}
}

// Siblings возвращает детей родителя, отсортированных по расстоянию от
// позиции сектора; сам сектор идет первым. Для корня и единственного
// ребенка возвращает nil.
func (s *Sector) Siblings() []*Sector {
	parent := s.Parent()
	if parent == nil {
		return nil
	}
	children := parent.Children()
	if len(children) <= 1 {
		return nil
	}

	out := make([]*Sector, 0, len(children))
	out = append(out, s)
	for _, c := range children {
		if c.ID != s.ID {
			out = append(out, c)
		}
	}
	others := out[1:]
	sort.SliceStable(others, func(i, j int) bool {
		return s.Pos.DistanceTo(others[i].Pos) < s.Pos.DistanceTo(others[j].Pos)
	})
	return out
}

// ClosestSibling ближайший сосед по позиции (nil, если соседей нет)
func (s *Sector) ClosestSibling() *Sector {
	siblings := s.Siblings()
	if len(siblings) < 2 {
		return nil
	}
	return siblings[1]
}

// ListConnectedSectors обходит граф коннекторов и возвращает все достижимые
// сектора, включая сам сектор, в порядке возрастания ID. Граф может
// содержать циклы.
func (s *Sector) ListConnectedSectors() []*Sector {
	visited := mapset.New[SectorID]()
	s.collectConnected(visited)

	ids := make([]SectorID, 0, visited.Size())
	visited.Each(func(id SectorID) {
		ids = append(ids, id)
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*Sector, 0, len(ids))
	for _, id := range ids {
		if sec := s.level.Sector(id); sec != nil {
			out = append(out, sec)
		}
	}
	return out
}

func (s *Sector) collectConnected(visited mapset.Set[SectorID]) {
	if visited.Has(s.ID) {
		return
	}
	visited.Put(s.ID)
	for _, c := range s.Connectors() {
		if other := s.level.Sector(c.Other(s.ID)); other != nil {
			other.collectConnected(visited)
		}
	}
}

// NumberOfConnectedSectors размер компоненты связности сектора
func (s *Sector) NumberOfConnectedSectors() int {
	return len(s.ListConnectedSectors())
}

// IsConnectedTo проверяет прямую или транзитивную связь с other
func (s *Sector) IsConnectedTo(other SectorID) bool {
	for _, sec := range s.ListConnectedSectors() {
		if sec.ID == other {
			return true
		}
	}
	return false
}

func (s *Sector) addChild(id SectorID) {
	s.children = append(s.children, id)
}

func (s *Sector) removeChild(id SectorID) {
	for i, c := range s.children {
		if c == id {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

func (s *Sector) removeConnector(id ConnectorID) {
	for i, c := range s.connectors {
		if c == id {
			s.connectors = append(s.connectors[:i], s.connectors[i+1:]...)
			return
		}
	}
}
