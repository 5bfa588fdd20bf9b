package util

import "math/rand"

// ShuffleBag взвешенный мешок: каждый элемент лежит в нём weight раз,
// Next достаёт случайный без возврата и пересобирает мешок, когда он пуст.
type ShuffleBag[T any] struct {
	rng   *rand.Rand
	items []T
	bag   []T
}

// NewShuffleBag создаёт пустой мешок
func NewShuffleBag[T any](rng *rand.Rand) *ShuffleBag[T] {
	return &ShuffleBag[T]{rng: rng}
}

// Add кладёт элемент weight раз
func (b *ShuffleBag[T]) Add(item T, weight int) {
	for i := 0; i < weight; i++ {
		b.items = append(b.items, item)
		b.bag = append(b.bag, item)
	}
}

// Len общий размер мешка (сумма весов)
func (b *ShuffleBag[T]) Len() int {
	return len(b.items)
}

// Remaining сколько элементов осталось до пересборки
func (b *ShuffleBag[T]) Remaining() int {
	return len(b.bag)
}

// Next достаёт случайный элемент. Для пустого мешка возвращает false.
func (b *ShuffleBag[T]) Next() (T, bool) {
	var zero T
	if len(b.items) == 0 {
		return zero, false
	}
	if len(b.bag) == 0 {
		b.bag = append(b.bag[:0], b.items...)
	}

	i := b.rng.Intn(len(b.bag))
	item := b.bag[i]
	last := len(b.bag) - 1
	b.bag[i] = b.bag[last]
	b.bag = b.bag[:last]
	return item, true
}
