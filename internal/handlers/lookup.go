package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samshad/5410-Serverless/internal/database"
	"github.com/samshad/5410-Serverless/utils"
)

// StatusUserNotFound is what existing clients expect for an absent key.
// 210 has no established HTTP meaning; it is kept for wire
// compatibility with the deployed front-end.
const StatusUserNotFound = 210

type LookupHandler struct {
	store database.UserSecurityStore
}

func NewLookupHandler(store database.UserSecurityStore) *LookupHandler {
	return &LookupHandler{store: store}
}

// GetUserSecurity performs exactly one point read keyed on the userId
// query parameter and maps the outcome onto the fixed response shapes.
func (h *LookupHandler) GetUserSecurity(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "userId is required")
	}

	attrs, found, err := h.store.Get(c.Context(), userID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
	if !found {
		return c.Status(StatusUserNotFound).JSON(fiber.Map{
			"status": "not_found",
			"error":  "User not found",
		})
	}

	return c.JSON(attrs)
}
