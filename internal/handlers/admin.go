package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/samshad/5410-Serverless/internal/database"
	"github.com/samshad/5410-Serverless/internal/models"
	"github.com/samshad/5410-Serverless/utils"
)

type AdminHandler struct {
	store database.FeedbackStore
}

func NewAdminHandler(store database.FeedbackStore) *AdminHandler {
	return &AdminHandler{store: store}
}

// Stats returns aggregate feedback counts for the dashboard, broken
// down by polarity.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	ctx := c.Context()

	total, err := h.store.Count(ctx)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count feedbacks")
	}

	byPolarity := fiber.Map{}
	for _, polarity := range []string{models.PolarityPositive, models.PolarityNegative, models.PolarityNeutral} {
		count, err := h.store.CountByPolarity(ctx, polarity)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count feedbacks")
		}
		byPolarity[polarity] = count
	}

	usersCount, _ := database.GetCollection(database.UsersCollection).CountDocuments(ctx, bson.M{})

	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"totalFeedbacks": total,
			"byPolarity":     byPolarity,
			"totalUsers":     usersCount,
		},
	})
}
