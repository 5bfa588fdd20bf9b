package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/loader"
	"github.com/annel0/dungeon-gen/internal/vec"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func dungeonParams(seed int64) Params {
	p := DefaultParams()
	p.Seed = seed
	return p
}

func cells(l *level.Level) []level.CellCode {
	out := make([]level.CellCode, 0, l.Width()*l.Height())
	for x := 0; x < l.Width(); x++ {
		for y := 0; y < l.Height(); y++ {
			out = append(out, l.GetCell(vec.Vec2{X: x, Y: y}, level.LayerAll))
		}
	}
	return out
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())

	cases := map[string]func(p *Params){
		"нулевой размер":        func(p *Params) { p.Width = 0 },
		"отрицательная высота":  func(p *Params) { p.Height = -5 },
		"шанс пропов больше 1":  func(p *Params) { p.PropChance = 1.5 },
		"шанс врагов меньше 0":  func(p *Params) { p.EnemyChance = -0.1 },
		"неизвестный тип":       func(p *Params) { p.Type = "maze" },
		"маленькое подземелье":  func(p *Params) { p.Width = 5 },
		"маленький тест":        func(p *Params) { p.Type = TypeTest; p.Width = 20 },
		"отрицательный бюджет":  func(p *Params) { p.MaxWalkerTicks = -1 },
	}
	for name, mutate := range cases {
		p := DefaultParams()
		mutate(&p)
		assert.ErrorIs(t, p.Validate(), ErrInvalidConfiguration, name)
	}

	p := DefaultParams()
	p.Type = TypeCave
	p.Width, p.Height = 10, 10
	assert.NoError(t, p.Validate())

	lt, err := ParseLevelType(" Cave ")
	require.NoError(t, err)
	assert.Equal(t, TypeCave, lt)
}

func TestRun_InvalidParamsRejectedBeforeAnyStep(t *testing.T) {
	called := false
	g := NewGenerator(
		WithObserver(ObserverFunc(func(*level.Level, string) { called = true })),
		WithOnCompleted(func(*level.Level, Params) { called = true }),
	)

	p := DefaultParams()
	p.Width = -1
	l, err := g.Run(context.Background(), p)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Nil(t, l)
	assert.False(t, called, "наблюдатели не вызываются")
}

func TestRun_DungeonEndToEnd(t *testing.T) {
	doorsSeen := false
	for seed := int64(1); seed <= 30; seed++ {
		l, err := NewGenerator().Run(context.Background(), dungeonParams(seed))
		require.NoError(t, err, "seed %d", seed)

		s := Summarize(l)
		assert.Greater(t, s.HallCells, 0, "seed %d: нет коридоров", seed)
		rooms := 0
		for _, sec := range l.Root().Children() {
			if sec.Code.IsRoom() {
				rooms++
			}
		}
		assert.Greater(t, rooms, 0, "seed %d: нет комнат", seed)

		children := l.Root().Children()
		for i := range children {
			for j := i + 1; j < len(children); j++ {
				assert.False(t, children[i].Rect().Overlaps(children[j].Rect()))
			}
		}

		for _, c := range l.Connectors() {
			if len(c.Path) != 0 {
				continue
			}
			doorsSeen = true
			assert.Equal(t, level.CellDoor, l.GetCell(c.Start, level.LayerDoors))
			assert.Equal(t, level.CellDoor, l.GetCell(c.End, level.LayerDoors))
			assert.NotEqual(t, c.From, c.To)
		}
	}
	assert.True(t, doorsSeen, "хотя бы один прогон должен соединить сектора дверью")
}

func TestRun_SameSeedSameLevel(t *testing.T) {
	a, err := NewGenerator().Run(context.Background(), dungeonParams(77))
	require.NoError(t, err)
	b, err := NewGenerator().Run(context.Background(), dungeonParams(77))
	require.NoError(t, err)

	assert.Equal(t, cells(a), cells(b))
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.SpawnPoint, b.SpawnPoint)
}

type recorder struct {
	stages []string
	ticks  map[string]int
}

func (r *recorder) OnStep(_ *level.Level, stage string) { r.stages = append(r.stages, stage) }

func (r *recorder) OnTick(_ *level.Level, stage string, _ int) {
	if r.ticks == nil {
		r.ticks = map[string]int{}
	}
	r.ticks[stage]++
}

func TestRun_ObserversAndCompletion(t *testing.T) {
	rec := &recorder{}
	completed := 0
	var got Params
	g := NewGenerator(
		WithObserver(rec),
		WithOnCompleted(func(l *level.Level, p Params) {
			completed++
			got = p
		}),
	)

	p := DefaultParams()
	p.Type = TypeCave
	p.Width, p.Height = 20, 20
	_, err := g.Run(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, []string{StageStart, "cave", "props", "enemies", "doors", "spawn_point", "room_census", StageEnd}, rec.stages)
	assert.Equal(t, 20*20, rec.ticks["cave"], "один тик на клетку")
	assert.Equal(t, 1, completed)
	assert.NotZero(t, got.Seed, "случайный сид подставляется")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator().Run(ctx, dungeonParams(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_TestLayout(t *testing.T) {
	p := DefaultParams()
	p.Type = TypeTest
	p.Seed = 9

	l, err := NewGenerator().Run(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, l.Rooms(), 3)

	var corridor *level.Connector
	for _, c := range l.Connectors() {
		if len(c.Path) > 0 {
			corridor = c
		}
	}
	require.NotNil(t, corridor)
	assert.Equal(t, level.CellRoomDice, l.Sector(corridor.From).Code)
	assert.True(t, l.HasConnector(l.SectorAt(vec.Vec2{X: 10, Y: 10}).ID, l.SectorAt(vec.Vec2{X: 20, Y: 15}).ID),
		"соседние комнаты получают дверь")
}

func TestRun_PreloadedLevel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{A: 255})
		}
	}
	for x := 2; x < 6; x++ {
		for y := 2; y < 6; y++ {
			img.Set(x, y, loader.CodeToColor(level.CellRoom))
			img.Set(x+4, y, loader.CodeToColor(level.CellRoomItem))
		}
	}
	path := filepath.Join(t.TempDir(), "level.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	p := Params{PreloadedLevel: path, RepeatDoorConnections: true, Seed: 3}
	l, err := NewGenerator().Run(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, 16, l.Width())
	assert.Len(t, l.Root().Children(), 2)
	assert.Equal(t, 1, Summarize(l).Doors, "загруженные комнаты соединяются дверью")

	p.PreloadedLevel = filepath.Join(t.TempDir(), "missing.png")
	_, err = NewGenerator().Run(context.Background(), p)
	assert.Error(t, err)
}

func TestRun_MetricsAndSpans(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	g := NewGenerator(WithMetrics(m), WithTracer(tp.Tracer("test")))
	_, err := g.Run(context.Background(), dungeonParams(5))
	require.NoError(t, err)

	bad := dungeonParams(5)
	bad.Type = TypeTest
	bad.Width, bad.Height = 30, 29
	_, err = g.Run(context.Background(), bad)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("dungeon", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inflight))
	assert.Greater(t, testutil.ToFloat64(m.stepUnits.WithLabelValues("walkers")), 0.0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.rooms))

	names := map[string]bool{}
	for _, s := range sr.Ended() {
		names[s.Name()] = true
	}
	assert.True(t, names["levelgen.run"])
	assert.True(t, names["levelgen.step.walkers"])
	assert.True(t, names["levelgen.step.doors"])
}
