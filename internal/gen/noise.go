package gen

import (
	"math"
	"math/rand"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/util"
	"github.com/annel0/dungeon-gen/internal/vec"
)

const (
	caveFrequency = 0.15
	caveThreshold = 0.35
	noiseOffset   = 100.0
)

// Cave вырезает пещеру шумом Перлина внутри грубого круглого силуэта
type Cave struct {
	Frequency float64 // 0 означает 0.15
	Threshold float64 // 0 означает 0.35
}

func (c Cave) Name() string { return "cave" }

func (c Cave) Start(l *level.Level, rng *rand.Rand) (Task, error) {
	freq, threshold := c.Frequency, c.Threshold
	if freq == 0 {
		freq = caveFrequency
	}
	if threshold == 0 {
		threshold = caveThreshold
	}

	offset := vec.Vec2Float{X: randFloat(rng, -noiseOffset, noiseOffset), Y: randFloat(rng, -noiseOffset, noiseOffset)}
	noise := util.NewNoise(rng.Int63())
	root := l.Root()
	center := l.Size().Div(2)
	cursor := &cellCursor{size: l.Size()}

	return TaskFunc(func() (bool, error) {
		p, ok := cursor.next()
		if !ok {
			return true, nil
		}
		if outsideSilhouette(p, center) {
			return false, nil
		}
		q := offset.Add(vec.FromVec2(p).Mul(freq))
		v := noise.Sample(q.X, q.Y)
		if v > threshold {
			root.SetCell(p, level.CellHall, level.LayerAll, false)
		}
		return false, nil
	}), nil
}

// outsideSilhouette true, если клетка дальше от центра, чем радиус силуэта.
// Радиус равен половине длины center и колеблется по синусу полярного угла.
func outsideSilhouette(p, center vec.Vec2) bool {
	toCenter := vec.FromVec2(p.Sub(center))
	up := vec.Vec2Float{X: 0, Y: 1}
	angle := up.AngleTo(toCenter)
	radius := vec.FromVec2(center).Length()/2 + math.Sin(angle*0.15)*2
	return toCenter.Length() > radius
}

// MaskedRemap переписывает клетки Source в Dest там, где шум выше порога
type MaskedRemap struct {
	Label     string
	Source    level.CellCode
	Dest      level.CellCode
	Threshold float64
	ScaleX    float64
	ScaleY    float64
	Layer     level.Layer
}

// NewDensityRemap шаг плотности: Hall -> dest с порогом 1-chance и масштабом 0.5
func NewDensityRemap(label string, dest level.CellCode, chance float64) MaskedRemap {
	return MaskedRemap{
		Label:     label,
		Source:    level.CellHall,
		Dest:      dest,
		Threshold: 1 - chance,
		ScaleX:    0.5,
		ScaleY:    0.5,
		Layer:     level.LayerAll,
	}
}

func (m MaskedRemap) Name() string {
	if m.Label != "" {
		return m.Label
	}
	return "remap"
}

func (m MaskedRemap) Start(l *level.Level, rng *rand.Rand) (Task, error) {
	layer := m.Layer
	if layer == 0 {
		layer = level.LayerAll
	}
	offset := vec.Vec2Float{X: randFloat(rng, -noiseOffset, noiseOffset), Y: randFloat(rng, -noiseOffset, noiseOffset)}
	noise := util.NewNoise(rng.Int63())
	root := l.Root()
	cursor := &cellCursor{size: l.Size()}

	return TaskFunc(func() (bool, error) {
		p, ok := cursor.next()
		if !ok {
			return true, nil
		}
		if root.GetCell(p, layer) != m.Source {
			return false, nil
		}
		q := offset.Add(vec.Vec2Float{X: float64(p.X) * m.ScaleX, Y: float64(p.Y) * m.ScaleY})
		v := noise.Sample(q.X, q.Y)
		if v > m.Threshold {
			root.SetCell(p, m.Dest, level.LayerAll, false)
		}
		return false, nil
	}), nil
}
