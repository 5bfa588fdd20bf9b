package level

import "github.com/annel0/dungeon-gen/internal/vec"

// ConnectorID идентификатор соединения в пределах уровня
type ConnectorID int

// Connector ребро между двумя секторами. Start и End заданы в абсолютных
// координатах, Path хранит относительные шаги проложенного коридора
// (пустой для дверей между соприкасающимися секторами).
type Connector struct {
	ID    ConnectorID
	From  SectorID
	To    SectorID
	Start vec.Vec2
	End   vec.Vec2
	Path  []Direction
}

// Other возвращает сектор на противоположном конце
func (c *Connector) Other(id SectorID) SectorID {
	if c.From == id {
		return c.To
	}
	if c.To == id {
		return c.From
	}
	return NoSector
}

// Joins сообщает, соединяет ли коннектор пару секторов (в любом порядке)
func (c *Connector) Joins(a, b SectorID) bool {
	return (c.From == a && c.To == b) || (c.From == b && c.To == a)
}

// Cells возвращает абсолютные клетки коридора: старт и каждый шаг пути
func (c *Connector) Cells() []vec.Vec2 {
	cells := make([]vec.Vec2, 0, len(c.Path)+1)
	p := c.Start
	cells = append(cells, p)
	for _, d := range c.Path {
		p = p.Add(d.Offset())
		cells = append(cells, p)
	}
	return cells
}
