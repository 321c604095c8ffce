package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/librozavisim/lor-simulator/internal/api"
	"github.com/librozavisim/lor-simulator/internal/config"
	"github.com/librozavisim/lor-simulator/internal/constants"
	"github.com/librozavisim/lor-simulator/internal/engine"
	"github.com/librozavisim/lor-simulator/internal/logging"
	"github.com/librozavisim/lor-simulator/internal/mechanics"
	"github.com/librozavisim/lor-simulator/internal/scripts"
	"github.com/librozavisim/lor-simulator/internal/service"
	"github.com/librozavisim/lor-simulator/internal/storage"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		logging.Fatal("Invalid environment configuration", err, nil)
	}

	content, err := config.LoadContent(settings.ContentPath)
	if err != nil {
		logging.Fatal("Missing or invalid content configuration", err, logging.Fields{
			constants.LogFieldPath: settings.ContentPath,
			"hint":                 "provide a content JSON with 'cards', 'weapons' and 'units' arrays",
		})
	}

	builder := engine.NewRegistryBuilder()
	mechanics.Register(builder)
	scripts.Register(builder)
	for _, c := range content.Cards {
		builder.AddCard(c)
	}
	for _, w := range content.Weapons {
		builder.AddWeapon(w)
	}
	reg := builder.Build()

	db, err := storage.OpenAndMigrate(settings.DatabaseDSN)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)
	svc := service.New(repo, reg, content.Units, settings.Seed)
	svc.SetPlanningTimeout(settings.PlanningTimeout)

	// Background sweep: force-resolve planning battles whose deadline
	// passed, so abandoned sessions never pin a round open.
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			svc.ResolveTimedOutBattles(time.Now())
		}
	}()

	if !settings.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	handler := api.NewBattleHandler(svc, content)
	handler.RegisterRoutes(router.Group(constants.RouteAPIPrefix))

	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: settings.Address})
	if err := router.Run(settings.Address); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
