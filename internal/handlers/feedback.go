package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/samshad/5410-Serverless/internal/database"
	"github.com/samshad/5410-Serverless/internal/models"
	"github.com/samshad/5410-Serverless/internal/services"
	"github.com/samshad/5410-Serverless/utils"
)

type FeedbackHandler struct {
	store     database.FeedbackStore
	sentiment services.SentimentClassifier
}

// NewFeedbackHandler wires the store and an optional sentiment
// classifier. With a nil classifier every submission is labeled neutral.
func NewFeedbackHandler(store database.FeedbackStore, sentiment services.SentimentClassifier) *FeedbackHandler {
	return &FeedbackHandler{
		store:     store,
		sentiment: sentiment,
	}
}

// List returns every feedback record, most recent first. The view does
// its own sorting and pagination client-side, so no query parameters
// are honored here.
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	feedbacks, err := h.store.List(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch feedbacks")
	}

	if feedbacks == nil {
		feedbacks = []models.Feedback{}
	}

	return c.JSON(feedbacks)
}

func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req models.SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	// Authenticated submissions are attributed to the account's display
	// name regardless of what the body claims.
	if username, ok := c.Locals("username").(string); ok && username != "" {
		req.Username = username
	}

	polarity := models.PolarityNeutral
	if h.sentiment != nil {
		label, err := h.sentiment.Classify(c.Context(), req.Feedback)
		if err != nil {
			log.Printf("sentiment classification failed, storing neutral: %v", err)
		} else {
			polarity = label
		}
	}

	feedback := models.Feedback{
		ID:       primitive.NewObjectID(),
		Username: req.Username,
		Feedback: req.Feedback,
		Polarity: polarity,
		DateTime: time.Now().UTC(),
	}

	if err := h.store.Insert(c.Context(), feedback); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save feedback")
	}

	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// Delete removes one record by its feedback_id token. The route is POST
// /delete_feedbacks to stay wire-compatible with existing clients.
func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
	var req models.DeleteFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.Validate.Struct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	deleted, err := h.store.Delete(c.Context(), req.FeedbackID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete feedback")
	}
	if !deleted {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Feedback not found")
	}

	return c.JSON(fiber.Map{
		"deleted":     true,
		"feedback_id": req.FeedbackID,
	})
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
