// Package loader строит уровень из заранее нарисованной раскладки:
// цвет каждого пикселя переводится в код клетки.
package loader

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // регистрация декодера PNG
	"math"
	"os"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/vec"
)

// ErrEmptyImage изображение без пикселей
var ErrEmptyImage = errors.New("layout image is empty")

// colorThreshold порог расстояния в RGB-пространстве [0,1]^3
const colorThreshold = 0.05

type rgb struct{ r, g, b float64 }

// palette таблица цвет <-> код. Порядок важен: первый совпавший цвет побеждает.
var palette = []struct {
	code level.CellCode
	c    rgb
}{
	{level.CellHall, rgb{0.5, 0.5, 0.5}},
	{level.CellEmpty, rgb{0, 0, 0}},
	{level.CellRoom, rgb{1, 1, 1}},
	{level.CellBossRoom, rgb{0.25, 0, 0}},
	{level.CellSpawner, rgb{0, 0, 0.25}},
	{level.CellPlayerSpawn, rgb{0, 0.25, 0}},
	{level.CellProp, rgb{0.25, 0.125, 0.05}},
	{level.CellRoomItem, rgb{0.933, 0.890, 0.286}},
	{level.CellRoomEnemies, rgb{0.933, 0.301, 0.286}},
	{level.CellRoomDice, rgb{0.921, 0.286, 0.933}},
	{level.CellRoomBloodOath, rgb{0.8, 0.141, 0.501}},
	{level.CellRoomChase, rgb{0.141, 0.8, 0.733}},
	{level.CellRoomKillChallenge, rgb{0.8, 0.360, 0.141}},
	{level.CellEnemy, rgb{0.55, 0.25, 0.25}},
	{level.CellDoor, rgb{1, 0, 1}},
}

func toRGB(c color.Color) rgb {
	r, g, b, _ := c.RGBA()
	return rgb{float64(r) / 0xffff, float64(g) / 0xffff, float64(b) / 0xffff}
}

func (a rgb) distance(b rgb) float64 {
	dr, dg, db := a.r-b.r, a.g-b.g, a.b-b.b
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// ColorToCode переводит цвет в код клетки; неизвестные цвета дают Empty
func ColorToCode(c color.Color) level.CellCode {
	v := toRGB(c)
	for _, p := range palette {
		if v.distance(p.c) < colorThreshold {
			return p.code
		}
	}
	return level.CellEmpty
}

// CodeToColor цвет кода клетки; для кодов без цвета чёрный
func CodeToColor(code level.CellCode) color.RGBA {
	for _, p := range palette {
		if p.code == code {
			return color.RGBA{
				R: uint8(math.Round(p.c.r * 255)),
				G: uint8(math.Round(p.c.g * 255)),
				B: uint8(math.Round(p.c.b * 255)),
				A: 255,
			}
		}
	}
	return color.RGBA{A: 255}
}

// layout доступ к пикселям с y, растущим вверх (нижняя строка - y=0)
type layout struct {
	img  image.Image
	size vec.Vec2
}

func (l layout) code(x, y int) level.CellCode {
	if x < 0 || y < 0 || x >= l.size.X || y >= l.size.Y {
		return level.CellError
	}
	b := l.img.Bounds()
	return ColorToCode(l.img.At(b.Min.X+x, b.Max.Y-1-y))
}

// Load строит уровень из изображения. Непрерывные прямоугольные отрезки
// комнатных цветов, не попавшие в уже созданный сектор, становятся
// секторами; остальные непустые пиксели пишутся клетками.
func Load(img image.Image) (*level.Level, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}
	src := layout{img: img, size: vec.Vec2{X: b.Dx(), Y: b.Dy()}}
	l := level.New(src.size.X, src.size.Y)

	last := level.CellError
	for x := 0; x < src.size.X; x++ {
		for y := 0; y < src.size.Y; y++ {
			cell := src.code(x, y)
			p := vec.Vec2{X: x, Y: y}
			if cell != level.CellEmpty {
				l.SetCell(p, cell, level.LayerAll, false)
			}

			if cell.IsRoom() && cell != last && l.SectorAt(p).IsRoot() {
				size := runSize(src, p, cell)
				sec, err := l.NewSector(p, size, cell, nil)
				if err != nil {
					return nil, fmt.Errorf("room run at %v: %w", p, err)
				}
				l.AddRoom(sec)
			}
			last = cell
		}
	}
	return l, nil
}

// runSize длина отрезков одинакового кода вправо и вверх от p
func runSize(src layout, p vec.Vec2, cell level.CellCode) vec.Vec2 {
	size := vec.Vec2{}
	for src.code(p.X, p.Y+size.Y) == cell {
		size.Y++
	}
	for src.code(p.X+size.X, p.Y) == cell {
		size.X++
	}
	return size
}

// LoadFile читает PNG-файл раскладки
func LoadFile(path string) (*level.Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", path, err)
	}
	return Load(img)
}
