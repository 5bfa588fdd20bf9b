package vec

import "math"

// Vec2 представляет 2D координаты клетки уровня
type Vec2 struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Zero нулевой вектор
var Zero = Vec2{}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub вычитает вектор
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale умножает обе компоненты на целый множитель
func (v Vec2) Scale(k int) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Div делит обе компоненты нацело
func (v Vec2) Div(k int) Vec2 {
	return Vec2{X: v.X / k, Y: v.Y / k}
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Length возвращает евклидову длину вектора
func (v Vec2) Length() float64 {
	return v.DistanceTo(Zero)
}

// InBox проверяет, лежит ли точка в прямоугольнике [pos, pos+size)
func (v Vec2) InBox(pos, size Vec2) bool {
	return v.X >= pos.X && v.X < pos.X+size.X &&
		v.Y >= pos.Y && v.Y < pos.Y+size.Y
}
