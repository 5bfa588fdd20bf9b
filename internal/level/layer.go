package level

// Layer битовая маска слоев сетки. Каждый код клетки хранится ровно
// в одном конкретном слое; LayerAll объединяет их при чтении.
type Layer uint8

const (
	LayerHall Layer = 1 << iota
	LayerRooms
	LayerDoors
	LayerProps
	LayerEnemies

	LayerAll = LayerHall | LayerRooms | LayerDoors | LayerProps | LayerEnemies
)

// concreteLayers перечисляет слои по убыванию ранга
var concreteLayers = [...]Layer{LayerEnemies, LayerProps, LayerDoors, LayerRooms, LayerHall}

var cellLayers = map[CellCode]Layer{
	CellError:             LayerHall,
	CellEmpty:             LayerHall,
	CellHall:              LayerHall,
	CellPlayerSpawn:       LayerHall,
	CellRoom:              LayerRooms,
	CellBossRoom:          LayerRooms,
	CellRoomItem:          LayerRooms,
	CellRoomPrison:        LayerRooms,
	CellRoomEnemies:       LayerRooms,
	CellRoomDice:          LayerRooms,
	CellRoomBloodOath:     LayerRooms,
	CellRoomKillChallenge: LayerRooms,
	CellRoomChase:         LayerRooms,
	CellSpawner:           LayerEnemies,
	CellEnemy:             LayerEnemies,
	CellProp:              LayerProps,
	CellDoor:              LayerDoors,
}

// LayerOf возвращает слой, в котором хранится код
func LayerOf(c CellCode) Layer {
	if l, ok := cellLayers[c]; ok {
		return l
	}
	return LayerHall
}

// Has проверяет, включен ли слой l в маску
func (m Layer) Has(l Layer) bool {
	return m&l != 0
}

// index возвращает номер плоскости для конкретного слоя
func (m Layer) index() int {
	switch m {
	case LayerHall:
		return 0
	case LayerRooms:
		return 1
	case LayerDoors:
		return 2
	case LayerProps:
		return 3
	case LayerEnemies:
		return 4
	}
	return -1
}

// String возвращает читаемое имя маски
func (m Layer) String() string {
	if m == LayerAll {
		return "all"
	}
	names := map[Layer]string{
		LayerHall: "hall", LayerRooms: "rooms", LayerDoors: "doors",
		LayerProps: "props", LayerEnemies: "enemies",
	}
	out := ""
	for i := len(concreteLayers) - 1; i >= 0; i-- {
		l := concreteLayers[i]
		if !m.Has(l) {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += names[l]
	}
	if out == "" {
		return "none"
	}
	return out
}
