// Точка входа Craftstore — сервиса каталога изделий ручной работы.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bigkaa/craftstore/internal/api/handlers"
	"github.com/bigkaa/craftstore/internal/config"
	"github.com/bigkaa/craftstore/internal/database"
	"github.com/bigkaa/craftstore/internal/repository"
	"github.com/bigkaa/craftstore/internal/server"
	"github.com/bigkaa/craftstore/internal/service"
)

func main() {
	// Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Настройка логгера
	logger := config.SetupLogger(cfg)
	logger.Info("Craftstore запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("backend", cfg.StoreBackend),
	)

	// --- Инициализация компонентов ---

	// 1. Хранилище записей
	var repo repository.CraftRepository
	var checker handlers.ReadinessChecker

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		// Применение миграций до открытия пула
		if err := database.Migrate(cfg, logger); err != nil {
			logger.Error("Ошибка применения миграций", slog.String("error", err.Error()))
			os.Exit(1)
		}

		pool, err := database.Connect(context.Background(), cfg, logger)
		if err != nil {
			logger.Error("Ошибка подключения к базе данных", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		repo = repository.NewCraftRepository(pool)
		checker = database.NewReadinessChecker(pool)

	case config.BackendMemory:
		logger.Warn("Хранилище в памяти: записи будут потеряны при перезапуске")
		repo = repository.NewMemoryRepository()
		checker = handlers.StaticReadinessChecker{}
	}

	// 2. Сервис каталога
	craftService := service.NewCraftService(repo, logger)

	// 3. HTTP-обработчики
	craftHandler := handlers.NewCraftHandler(craftService, logger)
	healthHandler := handlers.NewHealthHandler(checker, config.Version)

	// 4. HTTP-сервер с graceful shutdown
	srv := server.New(cfg, logger, craftHandler, healthHandler)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
