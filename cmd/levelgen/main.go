package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/dungeon-gen/internal/api"
	"github.com/annel0/dungeon-gen/internal/config"
	"github.com/annel0/dungeon-gen/internal/level"
	"github.com/annel0/dungeon-gen/internal/logging"
	"github.com/annel0/dungeon-gen/internal/observability"
	"github.com/annel0/dungeon-gen/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
)

const version = "v0.1.0"

func main() {
	configPath := flag.String("config", "", "путь к YAML-конфигурации (или LEVELGEN_CONFIG)")
	serve := flag.Bool("serve", false, "запустить HTTP API вместо одной генерации")
	seed := flag.Int64("seed", 0, "seed генерации (0 - случайный)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	if err := logging.InitDefaultLogger(cfg.Log.LoggingOptions()); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	ctx := context.Background()
	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry.GetServiceName(), version)
		if err != nil {
			logging.Error("❌ Ошибка инициализации телеметрии: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logging.Warn("⚠️ Ошибка остановки телеметрии: %v", err)
				}
			}()
		}
	}

	params, err := cfg.Generation.Params()
	if err != nil {
		logging.Error("❌ Неверные параметры генерации: %v", err)
		os.Exit(1)
	}
	if *seed != 0 {
		params.Seed = *seed
	}

	if *serve {
		if err := runServer(cfg, params); err != nil {
			logging.Error("❌ %v", err)
			os.Exit(1)
		}
		return
	}

	if err := runOnce(ctx, params); err != nil {
		logging.Error("❌ Генерация не удалась: %v", err)
		os.Exit(1)
	}
}

// runOnce генерирует один уровень и печатает сводку
func runOnce(ctx context.Context, p pipeline.Params) error {
	logging.Info("🎲 Генерация уровня %s %dx%d", p.Type, p.Width, p.Height)

	g := pipeline.NewGenerator(
		pipeline.WithObserver(pipeline.ObserverFunc(func(_ *level.Level, stage string) {
			logging.Debug("шаг %s", stage)
		})),
	)
	l, err := g.Run(ctx, p)
	if err != nil {
		return err
	}

	s := pipeline.Summarize(l)
	fmt.Printf("run=%s size=%dx%d sectors=%d rooms=%d doors=%d corridors=%d spawn=(%d,%d)\n",
		s.RunID, s.Width, s.Height, s.Sectors, s.Rooms, s.Doors, s.Connectors-s.Doors,
		s.SpawnPoint.X, s.SpawnPoint.Y)
	return nil
}

// runServer обслуживает HTTP API до SIGINT/SIGTERM
func runServer(cfg *config.Config, defaults pipeline.Params) error {
	reg := prometheus.NewRegistry()
	server := api.NewRestServer(api.Config{
		Port:         fmt.Sprintf(":%d", cfg.Server.GetRESTPort()),
		MaxLevelSize: cfg.Server.GetMaxLevelSize(),
		Defaults:     defaults,
		ServiceName:  cfg.Telemetry.GetServiceName(),
		Registry:     reg,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logging.Info("📴 Получен сигнал %v, завершаем работу", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Stop(ctx)
}
