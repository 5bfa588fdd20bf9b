package vec

// Rect прямоугольник с позицией и размером в целых клетках
type Rect struct {
	Pos  Vec2
	Size Vec2
}

// NewRect создает прямоугольник
func NewRect(pos, size Vec2) Rect {
	return Rect{Pos: pos, Size: size}
}

// Max возвращает точку сразу за правым верхним углом (исключительно)
func (r Rect) Max() Vec2 {
	return r.Pos.Add(r.Size)
}

// Contains проверяет, лежит ли точка внутри прямоугольника
func (r Rect) Contains(p Vec2) bool {
	return p.InBox(r.Pos, r.Size)
}

// ContainsRect проверяет, что other целиком лежит внутри r
func (r Rect) ContainsRect(other Rect) bool {
	return other.Pos.X >= r.Pos.X && other.Pos.Y >= r.Pos.Y &&
		other.Max().X <= r.Max().X && other.Max().Y <= r.Max().Y
}

// Overlaps строгий AABB-тест: касание сторонами пересечением не считается
func (r Rect) Overlaps(other Rect) bool {
	return r.Pos.X < other.Pos.X+other.Size.X &&
		r.Pos.X+r.Size.X > other.Pos.X &&
		r.Pos.Y < other.Pos.Y+other.Size.Y &&
		r.Pos.Y+r.Size.Y > other.Pos.Y
}
