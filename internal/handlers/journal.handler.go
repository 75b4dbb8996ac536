package handlers

import (
	"emoshown/internal/app"
	journalController "emoshown/internal/controllers/journal"
	"emoshown/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type JournalHandler struct {
	Handler
	journalController journalController.JournalControllerInterface
}

func NewJournalHandler(app app.App, router fiber.Router) *JournalHandler {
	log := logger.New("handlers").File("journal_handler")
	return &JournalHandler{
		journalController: app.Controllers.Journal,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *JournalHandler) Register() {
	journals := h.router.Group("/journals", h.middleware.RequireAuth())
	journals.Post("", h.createEntry)
	journals.Get("", h.listEntries)
}

func (h *JournalHandler) createEntry(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req journalController.CreateJournalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry, err := h.journalController.CreateEntry(c.UserContext(), user, &req)
	if err != nil {
		return errorResponse(c, err, "Failed to create journal entry")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"entry": entry,
	})
}

func (h *JournalHandler) listEntries(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return unauthorized(c)
	}

	entries, err := h.journalController.ListEntries(c.UserContext(), user, c.QueryInt("limit"))
	if err != nil {
		return errorResponse(c, err, "Failed to list journal entries")
	}

	return c.JSON(fiber.Map{
		"entries": entries,
	})
}
