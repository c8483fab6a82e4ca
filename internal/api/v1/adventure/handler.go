package adventure

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hedlaron/microadventures/internal/generator"
	"github.com/hedlaron/microadventures/internal/models"
	"github.com/hedlaron/microadventures/internal/services"
	"github.com/hedlaron/microadventures/internal/utils"
)

type Handler struct {
	adventures *services.AdventureService
	quotas     *services.QuotaService
}

func NewHandler(adventures *services.AdventureService, quotas *services.QuotaService) *Handler {
	return &Handler{adventures: adventures, quotas: quotas}
}

func currentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return models.User{}, false
	}
	return v.(models.User), true
}

// Generate godoc
// @Summary Generate personalized microadventure recommendations
// @Description Generate a new adventure itinerary. Each user has a daily quota of generations.
// @Tags adventures
// @Accept  json
// @Produce  json
// @Security Bearer
// @Param   input     body   GenerateAdventureInput  true  "Trip parameters"
// @Success 201 {object} utils.Response{data=adventure.AdventureResponse}
// @Failure 400 {object} utils.Response
// @Failure 429 {object} utils.Response
// @Router /adventures/generate [post]
func (h *Handler) Generate(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	var input GenerateAdventureInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	a, err := h.adventures.GenerateForUser(u.ID, generator.Request{
		Location:       input.Location,
		Destination:    input.Destination,
		Duration:       input.Duration,
		ActivityType:   input.ActivityType,
		IsRoundTrip:    input.IsRoundTrip,
		CustomActivity: input.CustomActivity,
		StartTime:      input.StartTime,
		IsImmediate:    input.IsImmediate,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuotaExhausted):
			c.JSON(http.StatusTooManyRequests, utils.NewErrorResponse(http.StatusTooManyRequests, err.Error()))
		case errors.Is(err, services.ErrInvalidUserID):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to generate adventure recommendations"))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Adventure generated successfully", toAdventureResponse(a)))
}

// History godoc
// @Summary Get user's adventure history
// @Tags adventures
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=adventure.HistoryResponse}
// @Router /adventures/my-history [get]
func (h *Handler) History(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	adventures, err := h.adventures.HistoryForUser(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch adventure history"))
		return
	}

	responses := make([]AdventureResponse, 0, len(adventures))
	for i := range adventures {
		responses = append(responses, toAdventureResponse(&adventures[i]))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Adventure history retrieved successfully", HistoryResponse{Adventures: responses}))
}

// Quota godoc
// @Summary Get user's adventure generation quota
// @Tags adventures
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=services.QuotaStatus}
// @Router /adventures/quota [get]
func (h *Handler) Quota(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	status, err := h.quotas.Status(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch quota information"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Quota retrieved successfully", status))
}

// Share godoc
// @Summary Toggle public sharing for an adventure
// @Description When enabled, generates a public share URL. The owner-only check collapses foreign adventures into not-found.
// @Tags adventures
// @Accept  json
// @Produce  json
// @Security Bearer
// @Param   input     body   ShareAdventureInput  true  "Share toggle"
// @Success 200 {object} utils.Response{data=adventure.ShareAdventureResponse}
// @Failure 404 {object} utils.Response
// @Router /adventures/{id}/share [post]
func (h *Handler) Share(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid adventure ID"))
		return
	}

	var input ShareAdventureInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	a, err := h.adventures.ToggleSharing(uint(id), u.ID, *input.MakePublic)
	if err != nil {
		if errors.Is(err, services.ErrAdventureNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Adventure not found or you don't have permission to modify it"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update sharing settings"))
		return
	}

	resp := ShareAdventureResponse{Success: true, Message: "Adventure sharing disabled"}
	if a.IsPublic && a.ShareToken != nil {
		shareURL := fmt.Sprintf("/shared/%s", *a.ShareToken)
		resp.ShareURL = &shareURL
		resp.Message = "Adventure is now publicly shareable"
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(resp.Message, resp))
}

// Shared godoc
// @Summary Get a publicly shared adventure
// @Description Resolve a share token to an adventure. No authentication required.
// @Tags adventures
// @Produce  json
// @Success 200 {object} utils.Response{data=adventure.PublicAdventureResponse}
// @Failure 404 {object} utils.Response
// @Router /adventures/shared/{token} [get]
func (h *Handler) Shared(c *gin.Context) {
	token := c.Param("token")

	a, err := h.adventures.GetSharedByToken(token)
	if err != nil {
		if errors.Is(err, services.ErrAdventureNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Shared adventure not found or no longer public"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch shared adventure"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Shared adventure retrieved successfully", toPublicResponse(a)))
}

// Delete godoc
// @Summary Delete an adventure
// @Tags adventures
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /adventures/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid adventure ID"))
		return
	}

	if err := h.adventures.Delete(uint(id), u.ID); err != nil {
		if errors.Is(err, services.ErrAdventureNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Adventure not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete adventure"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Adventure deleted", nil))
}
