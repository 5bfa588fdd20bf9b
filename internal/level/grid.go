package level

import "github.com/annel0/dungeon-gen/internal/vec"

// Grid многослойное хранилище кодов клеток фиксированного размера.
// Planes[layer][y*width+x]
type Grid struct {
	width, height int
	planes        [len(concreteLayers)][]CellCode
}

// NewGrid создаёт сетку, все слои которой заполнены CellEmpty
func NewGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height}
	for i := range g.planes {
		g.planes[i] = make([]CellCode, width*height)
	}
	return g
}

// Width ширина сетки
func (g *Grid) Width() int { return g.width }

// Height высота сетки
func (g *Grid) Height() int { return g.height }

// Size размер сетки
func (g *Grid) Size() vec.Vec2 { return vec.Vec2{X: g.width, Y: g.height} }

// Contains проверяет, что координаты внутри сетки
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// SetCell записывает код. Для LayerAll слой выбирается по коду.
// Без overwrite сохраняется max(старый, новый). Границы не проверяются:
// за это отвечает вызывающий (Sector).
func (g *Grid) SetCell(x, y int, value CellCode, layer Layer, overwrite bool) {
	if layer == LayerAll {
		layer = LayerOf(value)
	}
	plane := g.planes[layer.index()]
	i := y*g.width + x
	if overwrite {
		plane[i] = value
		return
	}
	plane[i] = MaxCode(plane[i], value)
}

// GetCell возвращает первый код выше CellEmpty, просматривая слои маски
// по убыванию ранга. За границами сетки возвращает CellError.
func (g *Grid) GetCell(x, y int, mask Layer) CellCode {
	if !g.Contains(x, y) {
		return CellError
	}
	i := y*g.width + x
	for _, l := range concreteLayers {
		if !mask.Has(l) {
			continue
		}
		if cell := g.planes[l.index()][i]; cell > CellEmpty {
			return cell
		}
	}
	return CellEmpty
}

// Clear сбрасывает клетку во всех слоях
func (g *Grid) Clear(x, y int) {
	if !g.Contains(x, y) {
		return
	}
	i := y*g.width + x
	for p := range g.planes {
		g.planes[p][i] = CellEmpty
	}
}

// Count считает клетки, читаемые через mask как code
func (g *Grid) Count(code CellCode, mask Layer) int {
	n := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.GetCell(x, y, mask) == code {
				n++
			}
		}
	}
	return n
}
