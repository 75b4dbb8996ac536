package handlers

import (
	"emoshown/internal/app"
	recommendationController "emoshown/internal/controllers/recommendation"
	"emoshown/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type RecommendationHandler struct {
	Handler
	recommendationController recommendationController.RecommendationControllerInterface
}

func NewRecommendationHandler(app app.App, router fiber.Router) *RecommendationHandler {
	log := logger.New("handlers").File("recommendation_handler")
	return &RecommendationHandler{
		recommendationController: app.Controllers.Recommendation,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *RecommendationHandler) Register() {
	recommendations := h.router.Group("/recommendations", h.middleware.RequireAuth())
	recommendations.Get("", h.getRecommendations)
	recommendations.Post("/feedback", h.postFeedback)

	activities := h.router.Group("/activities", h.middleware.RequireAuth())
	activities.Get("", h.listActivities)
}

func (h *RecommendationHandler) getRecommendations(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	response, err := h.recommendationController.Recommend(c.UserContext(), user, c.Query("strategy"))
	if err != nil {
		return errorResponse(c, err, "Failed to get recommendations")
	}

	return c.JSON(response)
}

func (h *RecommendationHandler) postFeedback(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req recommendationController.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	activity, err := h.recommendationController.Feedback(c.UserContext(), user, &req)
	if err != nil {
		return errorResponse(c, err, "Failed to record feedback")
	}

	return c.JSON(fiber.Map{
		"activity": activity,
	})
}

func (h *RecommendationHandler) listActivities(c *fiber.Ctx) error {
	if middleware.GetUser(c) == nil {
		return unauthorized(c)
	}

	activities, err := h.recommendationController.ListActivities(c.UserContext(), c.Query("kind"))
	if err != nil {
		return errorResponse(c, err, "Failed to list activities")
	}

	return c.JSON(fiber.Map{
		"activities": activities,
	})
}
