package level

import "fmt"

// CellCode описывает содержимое клетки. Порядок значений важен:
// код с большим рангом "сильнее" и побеждает при неразрушающей записи.
type CellCode int

const (
	CellError CellCode = iota - 1 // только для чтения за границами карты
	CellEmpty
	CellHall
	CellRoom
	CellBossRoom
	CellSpawner
	CellPlayerSpawn
	CellProp
	CellRoomItem
	CellRoomPrison
	CellRoomEnemies
	CellRoomDice
	CellRoomBloodOath
	CellRoomKillChallenge
	CellRoomChase
	CellEnemy
	CellDoor

	cellCodeCount // всегда последний
)

var cellNames = map[CellCode]string{
	CellError:             "error",
	CellEmpty:             "empty",
	CellHall:              "hall",
	CellRoom:              "room",
	CellBossRoom:          "boss_room",
	CellSpawner:           "spawner",
	CellPlayerSpawn:       "player_spawn",
	CellProp:              "prop",
	CellRoomItem:          "room_item",
	CellRoomPrison:        "room_prison",
	CellRoomEnemies:       "room_enemies",
	CellRoomDice:          "room_dice",
	CellRoomBloodOath:     "room_blood_oath",
	CellRoomKillChallenge: "room_kill_challenge",
	CellRoomChase:         "room_chase",
	CellEnemy:             "enemy",
	CellDoor:              "door",
}

// String возвращает имя кода
func (c CellCode) String() string {
	if name, ok := cellNames[c]; ok {
		return name
	}
	return fmt.Sprintf("cell(%d)", int(c))
}

// Valid сообщает, может ли код храниться в сетке
func (c CellCode) Valid() bool {
	return c >= CellEmpty && c < cellCodeCount
}

// IsRoom сообщает, относится ли код к классу комнат
func (c CellCode) IsRoom() bool {
	return LayerOf(c) == LayerRooms
}

// MaxCode возвращает более сильный из двух кодов
func MaxCode(a, b CellCode) CellCode {
	if a > b {
		return a
	}
	return b
}

// ParseCellCode ищет код по имени
func ParseCellCode(name string) (CellCode, bool) {
	for code, n := range cellNames {
		if n == name && code != CellError {
			return code, true
		}
	}
	return CellError, false
}
