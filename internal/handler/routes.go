package handler

import (
	"flashgen/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Register mounts the API routes on app.
func Register(app *fiber.App, flashcards *FlashcardHandler, health *HealthHandler, vm *middleware.ValidationMiddleware) {
	app.Get("/health", health.Health)

	api := app.Group("/api")
	api.Get("/subjects", flashcards.GetSubjects)
	api.Post("/flashcards", vm.ValidateGenerateRequest(), flashcards.GenerateFlashcards)
	api.Post("/flashcards/upload", vm.ValidateSubjectField(), flashcards.UploadFlashcards)
	api.Get("/flashcards/:request_id", flashcards.GetResult)
}
