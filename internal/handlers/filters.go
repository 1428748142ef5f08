package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"promotions-api/internal/models"
)

// resolveListQuery selects and runs exactly one list filter. When several
// query parameters are supplied the first match in this precedence order
// wins and the rest are ignored: name, start_date, promotion_type,
// product_id, status. With no parameters the full collection is returned.
// The second return value is false when an error response was already sent.
func (h *PromotionHandler) resolveListQuery(c *gin.Context) ([]models.Promotion, bool) {
	ctx := c.Request.Context()

	if name, ok := c.GetQuery("name"); ok {
		return h.runFilter(c)(h.common.store.FindByName(ctx, name))
	}

	if raw, ok := c.GetQuery("start_date"); ok {
		startDate, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			sendError(c, http.StatusBadRequest, fmt.Sprintf("Invalid start_date [%s]: expected YYYY-MM-DD", raw), err)
			return nil, false
		}
		return h.runFilter(c)(h.common.store.FindByStartDate(ctx, startDate))
	}

	if raw, ok := c.GetQuery("promotion_type"); ok {
		promotionType, err := models.ParsePromotionType(strings.ToUpper(raw))
		if err != nil {
			sendError(c, http.StatusBadRequest, err.Error(), err)
			return nil, false
		}
		return h.runFilter(c)(h.common.store.FindByPromotionType(ctx, promotionType))
	}

	if raw, ok := c.GetQuery("product_id"); ok {
		productID, err := strconv.Atoi(raw)
		if err != nil {
			sendError(c, http.StatusBadRequest, fmt.Sprintf("Invalid product_id [%s]: expected an integer", raw), err)
			return nil, false
		}
		return h.runFilter(c)(h.common.store.FindByProductID(ctx, productID))
	}

	if raw, ok := c.GetQuery("status"); ok {
		return h.runFilter(c)(h.common.store.FindByStatus(ctx, parseBoolish(raw)))
	}

	return h.runFilter(c)(h.common.store.All(ctx))
}

// runFilter folds the store result into the handler's error convention.
func (h *PromotionHandler) runFilter(c *gin.Context) func([]models.Promotion, error) ([]models.Promotion, bool) {
	return func(promotions []models.Promotion, err error) ([]models.Promotion, bool) {
		if err != nil {
			handleStoreError(c, err)
			return nil, false
		}
		return promotions, true
	}
}

// parseBoolish interprets a boolean query value: true/yes/1 (any case) mean
// true, everything else means false.
func parseBoolish(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}
