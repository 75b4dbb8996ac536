package handlers

import (
	"errors"

	"emoshown/internal/app"
	questionnaireController "emoshown/internal/controllers/questionnaire"
	"emoshown/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type QuestionnaireHandler struct {
	Handler
	questionnaireController questionnaireController.QuestionnaireControllerInterface
}

func NewQuestionnaireHandler(app app.App, router fiber.Router) *QuestionnaireHandler {
	log := logger.New("handlers").File("questionnaire_handler")
	return &QuestionnaireHandler{
		questionnaireController: app.Controllers.Questionnaire,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *QuestionnaireHandler) Register() {
	questionnaires := h.router.Group("/questionnaires", h.middleware.RequireAuth())
	questionnaires.Get("/items", h.getItems)
	questionnaires.Post("", h.submit)

	checkins := h.router.Group("/checkins", h.middleware.RequireAuth())
	checkins.Get("", h.listCheckins)
}

func (h *QuestionnaireHandler) getItems(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items": h.questionnaireController.Items(),
	})
}

func (h *QuestionnaireHandler) submit(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req questionnaireController.SubmitQuestionnaireRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.questionnaireController.Submit(c.UserContext(), user, &req)
	if err != nil {
		if errors.Is(err, questionnaireController.ErrCheckinNotSaved) && response != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":   "Checkin could not be saved",
				"checkin": response,
			})
		}
		return errorResponse(c, err, "Failed to submit questionnaire")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"checkin": response,
	})
}

func (h *QuestionnaireHandler) listCheckins(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	checkins, err := h.questionnaireController.ListCheckins(c.UserContext(), user, c.QueryInt("limit"))
	if err != nil {
		return errorResponse(c, err, "Failed to list checkins")
	}

	return c.JSON(fiber.Map{
		"checkins": checkins,
	})
}
