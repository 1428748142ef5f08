package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"promotions-api/internal/logger"
	"promotions-api/internal/models"
)

// PromotionHandler handles promotion-related operations
type PromotionHandler struct {
	common *CommonServices
}

// NewPromotionHandler creates a new PromotionHandler instance
func NewPromotionHandler(common *CommonServices) *PromotionHandler {
	return &PromotionHandler{common: common}
}

// parsePromotionID reads the path parameter. A non-numeric id cannot name an
// existing resource, so the caller treats a failure as not found.
func parsePromotionID(c *gin.Context) (uint, bool) {
	raw := c.Param("promotion_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		sendError(c, http.StatusNotFound, fmt.Sprintf("Promotion with id '%s' was not found.", raw), err)
		return 0, false
	}
	return uint(id), true
}

// CreatePromotion godoc
// @Summary      Create a promotion
// @Description  Creates a Promotion based on the JSON body that is posted
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        promotion  body      object  true  "Promotion payload"
// @Success      201        {object}  object  "The created promotion"
// @Header       201        {string}  Location  "URL of the created promotion"
// @Failure      400        {object}  ErrorResponse
// @Failure      415        {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /promotions [post]
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	logger.Info("Request to create a promotion")
	if !checkContentType(c) {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		sendError(c, http.StatusBadRequest, "Unable to read request body", err)
		return
	}

	promotion := models.NewPromotion()
	if err := promotion.Deserialize(body); err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	if err := h.common.store.Create(c.Request.Context(), promotion); err != nil {
		handleStoreError(c, err)
		return
	}

	logger.Info("Promotion created", zap.Uint("id", promotion.ID))
	c.Header("Location", fmt.Sprintf("/promotions/%d", promotion.ID))
	c.JSON(http.StatusCreated, promotion.Serialize())
}

// GetPromotion godoc
// @Summary      Retrieve a promotion
// @Description  Returns a single Promotion by its id
// @Tags         promotions
// @Produce      json
// @Param        promotion_id  path      int     true  "Promotion ID"
// @Success      200           {object}  object
// @Failure      404           {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /promotions/{promotion_id} [get]
func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	id, ok := parsePromotionID(c)
	if !ok {
		return
	}
	logger.Info("Request for promotion", zap.Uint("id", id))

	promotion, err := h.common.store.Find(c.Request.Context(), id)
	if err != nil {
		handleStoreError(c, err)
		return
	}
	if promotion == nil {
		sendError(c, http.StatusNotFound, fmt.Sprintf("Promotion with id '%d' was not found.", id), nil)
		return
	}

	c.JSON(http.StatusOK, promotion.Serialize())
}

// ListPromotions godoc
// @Summary      List promotions
// @Description  Returns all Promotions, optionally narrowed by a single query filter
// @Tags         promotions
// @Produce      json
// @Param        name            query     string  false  "Filter by exact name"
// @Param        start_date      query     string  false  "Filter by start date (YYYY-MM-DD)"
// @Param        promotion_type  query     string  false  "Filter by promotion type"
// @Param        product_id      query     int     false  "Filter by product id"
// @Param        status          query     string  false  "Filter by status (true/yes/1)"
// @Success      200             {array}   object
// @Failure      400             {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /promotions [get]
func (h *PromotionHandler) ListPromotions(c *gin.Context) {
	logger.Info("Request to list promotions")

	promotions, ok := h.resolveListQuery(c)
	if !ok {
		return
	}

	serialized := make([]map[string]interface{}, 0, len(promotions))
	for i := range promotions {
		serialized = append(serialized, promotions[i].Serialize())
	}
	c.JSON(http.StatusOK, serialized)
}

// UpdatePromotion godoc
// @Summary      Update a promotion
// @Description  Updates a Promotion based on the JSON body that is posted
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        promotion_id  path      int     true  "Promotion ID"
// @Param        promotion     body      object  true  "Promotion payload"
// @Success      200           {object}  object
// @Failure      400           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse
// @Failure      415           {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /promotions/{promotion_id} [put]
func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	if !checkContentType(c) {
		return
	}
	id, ok := parsePromotionID(c)
	if !ok {
		return
	}
	logger.Info("Request to update promotion", zap.Uint("id", id))

	promotion, err := h.common.store.Find(c.Request.Context(), id)
	if err != nil {
		handleStoreError(c, err)
		return
	}
	if promotion == nil {
		sendError(c, http.StatusNotFound, fmt.Sprintf("Promotion with id '%d' was not found.", id), nil)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		sendError(c, http.StatusBadRequest, "Unable to read request body", err)
		return
	}
	if err := promotion.Deserialize(body); err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	if err := h.common.store.Update(c.Request.Context(), promotion); err != nil {
		handleStoreError(c, err)
		return
	}

	logger.Info("Promotion updated", zap.Uint("id", promotion.ID))
	c.JSON(http.StatusOK, promotion.Serialize())
}

// DeletePromotion godoc
// @Summary      Delete a promotion
// @Description  Deletes a Promotion by its id; deleting an absent id is a no-op
// @Tags         promotions
// @Param        promotion_id  path  int  true  "Promotion ID"
// @Success      204  "No Content"
// @Security     ApiKeyAuth
// @Router       /promotions/{promotion_id} [delete]
func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	id, ok := parsePromotionID(c)
	if !ok {
		return
	}
	logger.Info("Request to delete promotion", zap.Uint("id", id))

	promotion, err := h.common.store.Find(c.Request.Context(), id)
	if err != nil {
		handleStoreError(c, err)
		return
	}
	if promotion != nil {
		if err := h.common.store.Delete(c.Request.Context(), promotion); err != nil {
			handleStoreError(c, err)
			return
		}
	}

	logger.Info("Promotion delete complete", zap.Uint("id", id))
	c.Status(http.StatusNoContent)
}

// ActivatePromotion godoc
// @Summary      Activate a promotion
// @Description  Sets the status of a Promotion to active
// @Tags         promotions
// @Produce      json
// @Param        promotion_id  path      int  true  "Promotion ID"
// @Success      200           {object}  object
// @Failure      404           {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /promotions/{promotion_id}/activate [put]
func (h *PromotionHandler) ActivatePromotion(c *gin.Context) {
	h.setPromotionStatus(c, true)
}

// DeactivatePromotion godoc
// @Summary      Deactivate a promotion
// @Description  Sets the status of a Promotion to inactive
// @Tags         promotions
// @Produce      json
// @Param        promotion_id  path      int  true  "Promotion ID"
// @Success      200           {object}  object
// @Failure      404           {object}  ErrorResponse
// @Security     ApiKeyAuth
// @Router       /promotions/{promotion_id}/deactivate [put]
func (h *PromotionHandler) DeactivatePromotion(c *gin.Context) {
	h.setPromotionStatus(c, false)
}

func (h *PromotionHandler) setPromotionStatus(c *gin.Context, status bool) {
	id, ok := parsePromotionID(c)
	if !ok {
		return
	}
	logger.Info("Request to set promotion status", zap.Uint("id", id), zap.Bool("status", status))

	promotion, err := h.common.store.Find(c.Request.Context(), id)
	if err != nil {
		handleStoreError(c, err)
		return
	}
	if promotion == nil {
		sendError(c, http.StatusNotFound, fmt.Sprintf("Promotion with id '%d' was not found.", id), nil)
		return
	}

	if status {
		err = h.common.store.Activate(c.Request.Context(), promotion)
	} else {
		err = h.common.store.Deactivate(c.Request.Context(), promotion)
	}
	if err != nil {
		handleStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, promotion.Serialize())
}
