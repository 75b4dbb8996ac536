package handlers

import (
	"emoshown/internal/app"
	analysisController "emoshown/internal/controllers/analysis"
	"emoshown/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AnalysisHandler struct {
	Handler
	analysisController analysisController.AnalysisControllerInterface
}

func NewAnalysisHandler(app app.App, router fiber.Router) *AnalysisHandler {
	log := logger.New("handlers").File("analysis_handler")
	return &AnalysisHandler{
		analysisController: app.Controllers.Analysis,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AnalysisHandler) Register() {
	analysis := h.router.Group("/analysis", h.middleware.RequireAuth())
	analysis.Get("/weekly", h.getWeeklyAnalysis)
}

func (h *AnalysisHandler) getWeeklyAnalysis(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	analysis, err := h.analysisController.WeeklyAnalysis(c.UserContext(), user, c.Query("today"))
	if err != nil {
		return errorResponse(c, err, "Failed to build weekly analysis")
	}

	return c.JSON(analysis)
}
