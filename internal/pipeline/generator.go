// Package pipeline запускает шаги генерации по порядку и сообщает
// наблюдателям о промежуточном состоянии уровня.
package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/annel0/dungeon-gen/internal/gen"
	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/loader"
	"github.com/annel0/dungeon-gen/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/annel0/dungeon-gen/internal/pipeline"

// Имена событий OnStep вне шагов
const (
	StageStart = "start"
	StageEnd   = "end"
)

// Observer получает уровень после каждого шага и в начале/конце прогона.
// Уровень доступен только для чтения.
type Observer interface {
	OnStep(l *level.Level, stage string)
}

// TickObserver дополнительно получает уровень между единицами работы шага
type TickObserver interface {
	Observer
	OnTick(l *level.Level, stage string, unit int)
}

// ObserverFunc адаптер функции к Observer
type ObserverFunc func(l *level.Level, stage string)

func (f ObserverFunc) OnStep(l *level.Level, stage string) { f(l, stage) }

// CompletedFunc вызывается один раз с готовым уровнем
type CompletedFunc func(l *level.Level, p Params)

// Generator планировщик шагов генерации
type Generator struct {
	observers   []Observer
	onCompleted CompletedFunc
	metrics     *Metrics
	tracer      trace.Tracer
	log         *logging.Logger
}

// Option настройка генератора
type Option func(*Generator)

// WithObserver добавляет наблюдателя
func WithObserver(o Observer) Option {
	return func(g *Generator) { g.observers = append(g.observers, o) }
}

// WithOnCompleted задаёт обработчик готового уровня
func WithOnCompleted(fn CompletedFunc) Option {
	return func(g *Generator) { g.onCompleted = fn }
}

// WithMetrics включает метрики
func WithMetrics(m *Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

// WithTracer задаёт трассировщик (по умолчанию глобальный провайдер)
func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) { g.tracer = t }
}

// NewGenerator создаёт генератор
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		tracer: otel.Tracer(tracerName),
		log:    logging.GetPipelineLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run проверяет параметры и выполняет все шаги. Контекст проверяется только
// между шагами. При ошибке уровень не возвращается.
func (g *Generator) Run(ctx context.Context, p Params) (*level.Level, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}

	ctx, span := g.tracer.Start(ctx, "levelgen.run", trace.WithAttributes(
		attribute.String("level.type", string(p.Type)),
		attribute.Int("level.width", p.Width),
		attribute.Int("level.height", p.Height),
		attribute.Int64("level.seed", p.Seed),
	))
	defer span.End()

	g.metrics.runStarted()
	l, err := g.run(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.metrics.runFinished(p.Type, "error", nil)
		g.log.Error("❌ generation failed: %v", err)
		return nil, err
	}

	summary := Summarize(l)
	span.SetAttributes(
		attribute.String("level.run_id", l.RunID),
		attribute.Int("level.rooms", summary.Rooms),
		attribute.Int("level.doors", summary.Doors),
	)
	g.metrics.runFinished(p.Type, "ok", summary)
	g.log.Info("✅ level %s ready: %dx%d, rooms %d, doors %d, seed %d",
		l.RunID, summary.Width, summary.Height, summary.Rooms, summary.Doors, p.Seed)

	if g.onCompleted != nil {
		g.onCompleted(l, p)
	}
	return l, nil
}

func (g *Generator) run(ctx context.Context, p Params) (*level.Level, error) {
	rng := rand.New(rand.NewSource(p.Seed))

	var l *level.Level
	if p.PreloadedLevel != "" {
		loaded, err := loader.LoadFile(p.PreloadedLevel)
		if err != nil {
			return nil, err
		}
		l = loaded
	} else {
		l = level.New(p.Width, p.Height)
	}
	g.log.Debug("▶ generation %s started: type %s, %dx%d", l.RunID, p.Type, l.Width(), l.Height())
	g.notifyStep(l, StageStart)

	for _, step := range p.Steps() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled before %s: %w", step.Name(), err)
		}
		if err := g.runStep(ctx, step, l, rng); err != nil {
			return nil, err
		}
	}

	g.notifyStep(l, StageEnd)
	return l, nil
}

func (g *Generator) runStep(ctx context.Context, step gen.Step, l *level.Level, rng *rand.Rand) error {
	name := step.Name()
	_, span := g.tracer.Start(ctx, "levelgen.step."+name)
	defer span.End()

	start := time.Now()
	task, err := step.Start(l, rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("start %s: %w", name, err)
	}

	units := 0
	for {
		done, err := task.Advance()
		units++
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("%s: %w", name, err)
		}
		if done {
			break
		}
		g.notifyTick(l, name, units)
	}

	elapsed := time.Since(start)
	span.SetAttributes(attribute.Int("step.units", units))
	g.metrics.observeStep(name, elapsed.Seconds(), units)
	g.log.Debug("⏱ step %s: %d units in %v", name, units, elapsed)

	g.notifyStep(l, name)
	return nil
}

func (g *Generator) notifyStep(l *level.Level, stage string) {
	for _, o := range g.observers {
		o.OnStep(l, stage)
	}
}

func (g *Generator) notifyTick(l *level.Level, stage string, unit int) {
	for _, o := range g.observers {
		if t, ok := o.(TickObserver); ok {
			t.OnTick(l, stage, unit)
		}
	}
}
