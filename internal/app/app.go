package app

import (
	"context"

	"emoshown/config"
	"emoshown/internal/controllers"
	"emoshown/internal/database"
	"emoshown/internal/handlers/middleware"
	"emoshown/internal/jobs"
	"emoshown/internal/repositories"
	"emoshown/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	repos := repositories.New(db)

	services, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	controllers := controllers.New(services, repos, config, db)
	middleware := middleware.New(db, config, repos, services)

	if err := jobs.RegisterAllJobs(services.Scheduler, config, repos, controllers, db); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	app := &App{
		Database:    db,
		Middleware:  middleware,
		Config:      config,
		Services:    services,
		Repos:       repos,
		Controllers: controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	if err := services.Scheduler.Start(context.Background()); err != nil {
		return &App{}, log.Err("failed to start scheduler", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := map[string]bool{
		"auth service":              a.Services.Auth == nil,
		"sentiment service":         a.Services.Sentiment == nil,
		"transaction service":       a.Services.Transaction == nil,
		"scheduler service":         a.Services.Scheduler == nil,
		"user repository":           a.Repos.User == nil,
		"journal repository":        a.Repos.Journal == nil,
		"checkin repository":        a.Repos.Checkin == nil,
		"activity repository":       a.Repos.Activity == nil,
		"interaction repository":    a.Repos.Interaction == nil,
		"analysis cache repository": a.Repos.AnalysisCache == nil,
		"journal controller":        a.Controllers.Journal == nil,
		"questionnaire controller":  a.Controllers.Questionnaire == nil,
		"analysis controller":       a.Controllers.Analysis == nil,
		"recommendation controller": a.Controllers.Recommendation == nil,
	}

	for name, isNil := range nilChecks {
		if isNil {
			return log.Error("nil check failed", "component", name)
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil && a.Services.Scheduler.IsRunning() {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
