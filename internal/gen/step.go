// Package gen содержит шаги генерации уровня. Каждый шаг создаёт Task,
// который планировщик продвигает по одной единице работы за вызов.
package gen

import (
	"fmt"
	"math/rand"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/vec"
)

// Task выполняет работу шага порциями
type Task interface {
	// Advance выполняет одну единицу работы; done=true, когда шаг завершён
	Advance() (done bool, err error)
}

// TaskFunc адаптер функции к Task
type TaskFunc func() (bool, error)

// Advance вызывает f
func (f TaskFunc) Advance() (bool, error) { return f() }

// Step шаг конвейера генерации
type Step interface {
	Name() string
	Start(l *level.Level, rng *rand.Rand) (Task, error)
}

// Run прогоняет шаг до конца без наблюдателей
func Run(s Step, l *level.Level, rng *rand.Rand) error {
	task, err := s.Start(l, rng)
	if err != nil {
		return fmt.Errorf("start %s: %w", s.Name(), err)
	}
	for {
		done, err := task.Advance()
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name(), err)
		}
		if done {
			return nil
		}
	}
}

// Empty шаг, который ничего не делает (уровень загружен заранее)
type Empty struct{}

func (Empty) Name() string { return "empty" }

func (Empty) Start(*level.Level, *rand.Rand) (Task, error) {
	return TaskFunc(func() (bool, error) { return true, nil }), nil
}

// cellCursor обходит клетки прямоугольника x снаружи, y внутри
type cellCursor struct {
	size vec.Vec2
	x, y int
}

// next возвращает следующую клетку; false, когда обход закончен
func (c *cellCursor) next() (vec.Vec2, bool) {
	if c.size.Y <= 0 || c.x >= c.size.X {
		return vec.Zero, false
	}
	p := vec.Vec2{X: c.x, Y: c.y}
	c.y++
	if c.y >= c.size.Y {
		c.y = 0
		c.x++
	}
	return p, true
}

// randRange целое в [lo, hi); при hi <= lo возвращает lo
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

// randFloat число в [lo, hi)
func randFloat(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
