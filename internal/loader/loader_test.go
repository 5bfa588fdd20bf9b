package loader

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paint рисует код в координатах уровня (y вверх)
func paint(img *image.RGBA, x, y int, code level.CellCode) {
	h := img.Bounds().Dy()
	img.Set(x, h-1-y, CodeToColor(code))
}

func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{A: 255})
		}
	}
	return img
}

func TestColorTable_RoundTrip(t *testing.T) {
	for _, p := range palette {
		assert.Equal(t, p.code, ColorToCode(CodeToColor(p.code)), "код %v", p.code)
	}
	assert.Equal(t, level.CellEmpty, ColorToCode(color.RGBA{R: 10, G: 200, B: 30, A: 255}), "неизвестный цвет")
	assert.Equal(t, level.CellDoor, ColorToCode(color.RGBA{R: 255, B: 250, A: 255}))
}

func TestLoad_RoomRunsBecomeSectors(t *testing.T) {
	img := blank(12, 10)
	for x := 2; x < 6; x++ {
		for y := 1; y < 4; y++ {
			paint(img, x, y, level.CellRoomChase)
		}
	}
	for x := 6; x < 10; x++ {
		paint(img, x, 2, level.CellHall)
	}
	paint(img, 3, 2, level.CellProp) // внутри комнаты
	paint(img, 11, 9, level.CellEnemy)

	l, err := Load(img)
	require.NoError(t, err)
	assert.Equal(t, vec.Vec2{X: 12, Y: 10}, l.Size())

	children := l.Root().Children()
	require.Len(t, children, 1)
	room := children[0]
	assert.Equal(t, vec.Vec2{X: 2, Y: 1}, room.Pos)
	assert.Equal(t, vec.Vec2{X: 4, Y: 3}, room.Size)
	assert.Equal(t, level.CellRoomChase, room.Code)
	require.Len(t, l.Rooms(), 1)

	assert.Equal(t, level.CellHall, l.GetCell(vec.Vec2{X: 7, Y: 2}, level.LayerAll))
	assert.Equal(t, level.CellEnemy, l.GetCell(vec.Vec2{X: 11, Y: 9}, level.LayerAll))
	assert.Equal(t, level.CellRoomChase, l.GetCell(vec.Vec2{X: 3, Y: 2}, level.LayerRooms),
		"сектор заливает свою площадь")
	assert.Equal(t, level.CellEmpty, l.GetCell(vec.Vec2{X: 0, Y: 0}, level.LayerAll))
}

func TestLoad_EmptyImage(t *testing.T) {
	_, err := Load(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestLoadFile_PNG(t *testing.T) {
	img := blank(8, 8)
	for x := 1; x < 4; x++ {
		for y := 1; y < 4; y++ {
			paint(img, x, y, level.CellBossRoom)
		}
	}

	path := filepath.Join(t.TempDir(), "layout.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	l, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, l.Root().Children(), 1)
	assert.Equal(t, level.CellBossRoom, l.Root().Children()[0].Code)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
