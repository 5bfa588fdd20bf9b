package util

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoise_RangeAndDeterminism(t *testing.T) {
	a := NewNoise(42)
	b := NewNoise(42)

	for x := 0; x < 30; x++ {
		for y := 0; y < 30; y++ {
			fx, fy := float64(x)*0.15+0.37, float64(y)*0.15-12.5
			va := a.Sample(fx, fy)
			assert.GreaterOrEqual(t, va, 0.0, "шум должен быть не меньше 0")
			assert.LessOrEqual(t, va, 1.0, "шум должен быть не больше 1")
			assert.Equal(t, va, b.Sample(fx, fy), "одинаковый сид даёт одинаковый шум")
		}
	}
	assert.Equal(t, int64(42), a.Seed())
}

func TestShuffleBag_DrainsByWeight(t *testing.T) {
	bag := NewShuffleBag[string](rand.New(rand.NewSource(7)))
	bag.Add("a", 3)
	bag.Add("b", 1)
	require.Equal(t, 4, bag.Len())

	counts := map[string]int{}
	for i := 0; i < 4; i++ {
		item, ok := bag.Next()
		require.True(t, ok)
		counts[item]++
	}
	assert.Equal(t, 3, counts["a"], "за полный цикл элемент выпадает ровно weight раз")
	assert.Equal(t, 1, counts["b"])
	assert.Equal(t, 0, bag.Remaining())

	_, ok := bag.Next()
	assert.True(t, ok, "мешок пересобирается")
	assert.Equal(t, 3, bag.Remaining())
}

func TestShuffleBag_Empty(t *testing.T) {
	bag := NewShuffleBag[int](rand.New(rand.NewSource(1)))
	_, ok := bag.Next()
	assert.False(t, ok)
}
