package handler

import (
	"context"
	"io"
	"time"

	"flashgen/internal/adapter/extract"
	"flashgen/internal/domain"
	"flashgen/internal/dto"
	"flashgen/internal/logger"
	"flashgen/internal/middleware"
	"flashgen/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FlashcardHandler handles flashcard-related HTTP requests
type FlashcardHandler struct {
	service service.FlashcardService
}

// NewFlashcardHandler creates a new FlashcardHandler instance
func NewFlashcardHandler(service service.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{
		service: service,
	}
}

// GetSubjects godoc
// @Summary List subjects
// @Description Returns the subjects accepted by the generation endpoints
// @Tags flashcards
// @Produce json
// @Success 200 {object} dto.SubjectsResponse
// @Router /subjects [get]
func (h *FlashcardHandler) GetSubjects(c *fiber.Ctx) error {
	return c.JSON(dto.NewSubjectsResponse(domain.Subjects()))
}

// GenerateFlashcards godoc
// @Summary Generate flashcards from text
// @Description Generates question/answer flashcards from at least 100 characters of text. An empty card list comes back with a NO_CARDS_FOUND warning.
// @Tags flashcards
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "Source text and subject"
// @Success 200 {object} dto.FlashcardResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /flashcards [post]
func (h *FlashcardHandler) GenerateFlashcards(c *fiber.Ctx) error {
	req, ok := middleware.ValidatedRequest(c)
	if !ok {
		return domain.NewInternalError("generation request was not validated", nil)
	}

	result, err := h.service.Run(c.UserContext(), req.Text, middleware.ValidatedSubject(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFlashcardResponse(result))
}

// UploadFlashcards godoc
// @Summary Generate flashcards from a file
// @Description Extracts text from an uploaded PDF or UTF-8 text file and generates flashcards from it
// @Tags flashcards
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or TXT document"
// @Param subject formData string false "Subject" Enums(General, Science, History, Math, Literature)
// @Success 200 {object} dto.FlashcardResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /flashcards/upload [post]
func (h *FlashcardHandler) UploadFlashcards(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidInputError("A file field named \"file\" is required")
	}

	docType, err := extract.DetectType(fileHeader.Header.Get(fiber.HeaderContentType), fileHeader.Filename)
	if err != nil {
		return err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("failed to open uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.NewInternalError("failed to read uploaded file", err)
	}

	logger.Get().Debug("File uploaded",
		zap.String("request_id", middleware.RequestID(c)),
		zap.String("filename", fileHeader.Filename),
		zap.String("type", string(docType)),
		zap.Int("bytes", len(data)))

	doc := domain.Document{Name: fileHeader.Filename, Type: docType, Data: data}
	result, err := h.service.RunDocument(c.UserContext(), doc, middleware.ValidatedSubject(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFlashcardResponse(result))
}

// GetResult godoc
// @Summary Fetch a previous result
// @Description Returns a stored generation result by its request ID while it is still cached
// @Tags flashcards
// @Produce json
// @Param request_id path string true "Request ID"
// @Success 200 {object} dto.FlashcardResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /flashcards/{request_id} [get]
func (h *FlashcardHandler) GetResult(c *fiber.Ctx) error {
	result, err := h.service.Result(c.UserContext(), c.Params("request_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFlashcardResponse(result))
}

// HealthHandler reports model and cache readiness
type HealthHandler struct {
	service service.FlashcardService
	cache   domain.Cache
	model   string
}

// NewHealthHandler creates a health handler. cache may be nil.
func NewHealthHandler(service service.FlashcardService, cache domain.Cache, model string) *HealthHandler {
	return &HealthHandler{service: service, cache: cache, model: model}
}

// Health godoc
// @Summary Health check
// @Description Reports whether the model is loaded and the cache is reachable. Returns 503 when the model is unavailable.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Model: h.model, ModelReady: true, Cache: "disabled"}
	status := fiber.StatusOK

	if err := h.service.Ready(); err != nil {
		resp.Status = "degraded"
		resp.ModelReady = false
		resp.ModelError = err.Error()
		status = fiber.StatusServiceUnavailable
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Cache ping failed", zap.Error(err))
			resp.Cache = "unreachable"
		} else {
			resp.Cache = "ok"
		}
	}
	return c.Status(status).JSON(resp)
}
