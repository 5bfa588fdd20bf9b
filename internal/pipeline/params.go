package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/annel0/dungeon-gen/internal/gen"
	"github.com/annel0/dungeon-gen/internal/level"
)

// ErrInvalidConfiguration параметры генерации некорректны
var ErrInvalidConfiguration = errors.New("invalid generation configuration")

// LevelType алгоритм основной разметки
type LevelType string

const (
	TypeDungeon LevelType = "dungeon"
	TypeCave    LevelType = "cave"
	TypeTest    LevelType = "test"
)

// LevelTypes все поддерживаемые типы
var LevelTypes = []LevelType{TypeDungeon, TypeCave, TypeTest}

// ParseLevelType разбирает тип без учёта регистра
func ParseLevelType(s string) (LevelType, error) {
	t := LevelType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range LevelTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown level type %q", ErrInvalidConfiguration, s)
}

// Минимальные размеры уровня по типам
const (
	MinDungeonSize = 8
	MinCaveSize    = 4
)

// Params параметры одного прогона
type Params struct {
	Type           LevelType `json:"type" yaml:"type"`
	Width          int       `json:"width" yaml:"width"`
	Height         int       `json:"height" yaml:"height"`
	PropChance     float64   `json:"prop_chance" yaml:"prop_chance"`
	EnemyChance    float64   `json:"enemy_chance" yaml:"enemy_chance"`
	Seed           int64     `json:"seed" yaml:"seed"` // 0 - случайный
	PreloadedLevel string    `json:"preloaded_level,omitempty" yaml:"preloaded_level"`

	RepeatDoorConnections bool `json:"repeat_door_connections" yaml:"repeat_door_connections"`
	MaxWalkerTicks        int  `json:"max_walker_ticks,omitempty" yaml:"max_walker_ticks"`
}

// DefaultParams значения по умолчанию: подземелье 50x50, шансы 0.65
func DefaultParams() Params {
	return Params{
		Type:                  TypeDungeon,
		Width:                 50,
		Height:                50,
		PropChance:            0.65,
		EnemyChance:           0.65,
		RepeatDoorConnections: true,
	}
}

// Validate проверяет параметры до запуска конвейера
func (p Params) Validate() error {
	if p.PropChance < 0 || p.PropChance > 1 {
		return fmt.Errorf("%w: prop chance %v not in [0,1]", ErrInvalidConfiguration, p.PropChance)
	}
	if p.EnemyChance < 0 || p.EnemyChance > 1 {
		return fmt.Errorf("%w: enemy chance %v not in [0,1]", ErrInvalidConfiguration, p.EnemyChance)
	}
	if p.MaxWalkerTicks < 0 {
		return fmt.Errorf("%w: max walker ticks %d is negative", ErrInvalidConfiguration, p.MaxWalkerTicks)
	}
	if p.PreloadedLevel != "" {
		return nil
	}

	if _, err := ParseLevelType(string(p.Type)); err != nil {
		return err
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfiguration, p.Width, p.Height)
	}

	min := MinCaveSize
	switch p.Type {
	case TypeDungeon:
		min = MinDungeonSize
	case TypeTest:
		min = gen.TestLayoutMinSize
	}
	if p.Width < min || p.Height < min {
		return fmt.Errorf("%w: %s level needs at least %dx%d, got %dx%d",
			ErrInvalidConfiguration, p.Type, min, min, p.Width, p.Height)
	}
	return nil
}

// Steps упорядоченный список шагов для параметров
func (p Params) Steps() []gen.Step {
	steps := []gen.Step{p.primary()}
	steps = append(steps,
		gen.NewDensityRemap("props", level.CellProp, p.PropChance),
		gen.NewDensityRemap("enemies", level.CellEnemy, p.EnemyChance),
		gen.Doors{RepeatConnectionsOnDifferentSides: p.RepeatDoorConnections},
		gen.SpawnPoint{},
		gen.RoomCensus{},
	)
	return steps
}

func (p Params) primary() gen.Step {
	if p.PreloadedLevel != "" {
		return gen.Empty{}
	}
	switch p.Type {
	case TypeCave:
		return gen.Cave{}
	case TypeTest:
		return gen.TestLayout{}
	default:
		return gen.Walkers{MaxTicks: p.MaxWalkerTicks}
	}
}
