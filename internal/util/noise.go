package util

import (
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	noiseAlpha   = 2.0 // Сглаживание шума
	noiseBeta    = 2.0 // Частота шума
	noiseOctaves = int32(3)
)

// Noise детерминированный источник шума Перлина в диапазоне [0, 1].
// Каждый прогон генерации владеет своим экземпляром.
type Noise struct {
	seed int64
	p    *perlin.Perlin
}

// NewNoise создаёт генератор шума с указанным сидом
func NewNoise(seed int64) *Noise {
	return &Noise{
		seed: seed,
		p:    perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
	}
}

// Seed сид генератора
func (n *Noise) Seed() int64 {
	return n.seed
}

// Sample возвращает значение шума для координат (от 0 до 1)
func (n *Noise) Sample(x, y float64) float64 {
	// Получаем значение шума (примерно от -1 до 1) и переводим в [0, 1]
	v := (n.p.Noise2D(x, y) + 1.0) / 2.0
	return math.Max(0, math.Min(1, v))
}
