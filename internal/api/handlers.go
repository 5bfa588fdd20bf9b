package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/annel0/dungeon-gen/internal/pipeline"
	"github.com/gin-gonic/gin"
)

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// GenerateRequest тело POST /api/levels. Незаданные поля берутся из
// параметров сервера по умолчанию.
type GenerateRequest struct {
	Type                  string   `json:"type"`
	Width                 int      `json:"width"`
	Height                int      `json:"height"`
	PropChance            *float64 `json:"prop_chance"`
	EnemyChance           *float64 `json:"enemy_chance"`
	Seed                  int64    `json:"seed"`
	RepeatDoorConnections *bool    `json:"repeat_door_connections"`
	IncludeCells          bool     `json:"include_cells"`
}

// params собирает параметры генерации поверх defaults
func (r GenerateRequest) params(defaults pipeline.Params) (pipeline.Params, error) {
	p := defaults
	// загрузка PNG по пути из запроса не допускается
	p.PreloadedLevel = ""
	if r.Type != "" {
		t, err := pipeline.ParseLevelType(r.Type)
		if err != nil {
			return p, err
		}
		p.Type = t
	}
	if r.Width != 0 {
		p.Width = r.Width
	}
	if r.Height != 0 {
		p.Height = r.Height
	}
	if r.PropChance != nil {
		p.PropChance = *r.PropChance
	}
	if r.EnemyChance != nil {
		p.EnemyChance = *r.EnemyChance
	}
	if r.RepeatDoorConnections != nil {
		p.RepeatDoorConnections = *r.RepeatDoorConnections
	}
	p.Seed = r.Seed
	return p, p.Validate()
}

// handleHealth проверка живости
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// handleLevelTypes возвращает поддерживаемые типы уровней
func (rs *RestServer) handleLevelTypes(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Типы уровней",
		Data: gin.H{
			"types":    pipeline.LevelTypes,
			"defaults": rs.defaults,
			"max_size": rs.maxLevelSize,
		},
	})
}

// handleGenerate генерирует уровень и возвращает его снимок
func (rs *RestServer) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rs.metrics.LevelFailed()
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса",
		})
		return
	}

	p, err := req.params(rs.defaults)
	if err == nil && (p.Width > rs.maxLevelSize || p.Height > rs.maxLevelSize) {
		err = fmt.Errorf("%w: level %dx%d exceeds %d", pipeline.ErrInvalidConfiguration, p.Width, p.Height, rs.maxLevelSize)
	}
	if err != nil {
		rs.metrics.LevelFailed()
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	l, err := rs.generator.Run(c.Request.Context(), p)
	if err != nil {
		rs.metrics.LevelFailed()
		status := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrInvalidConfiguration) {
			status = http.StatusBadRequest
		}
		rs.log.Warn("⚠️ Генерация %s %dx%d не удалась: %v", p.Type, p.Width, p.Height, err)
		c.JSON(status, GenericResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	rs.metrics.LevelGenerated()
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Уровень сгенерирован",
		Data:    NewLevelSnapshot(l, p, req.IncludeCells),
	})
}

// handleStats возвращает статистику сервера
func (rs *RestServer) handleStats(c *gin.Context) {
	cpuPercent, _ := rs.metrics.GetCPUUsage()

	stats := gin.H{
		"levels": gin.H{
			"generated": rs.metrics.Generated(),
			"failed":    rs.metrics.Failed(),
		},
		"server": gin.H{
			"uptime":      rs.metrics.GetUptime(),
			"memory_mb":   fmt.Sprintf("%.2f", rs.metrics.GetMemoryUsage()),
			"cpu_percent": fmt.Sprintf("%.2f", cpuPercent),
			"server_time": time.Now().Unix(),
		},
		"memory_details": rs.metrics.GetDetailedMemoryStats(),
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data:    stats,
	})
}
