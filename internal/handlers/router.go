package handlers

import (
	"emoshown/internal/app"
	"emoshown/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api", app.Middleware.TraceID())

	HealthHandler(api, app.Config)
	NewJournalHandler(*app, api).Register()
	NewAnalysisHandler(*app, api).Register()
	NewQuestionnaireHandler(*app, api).Register()
	NewRecommendationHandler(*app, api).Register()

	return nil
}
