package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":           "Sale",
		"start_date":     "2024-01-01",
		"duration":       10,
		"promotion_type": "BXGY",
		"rule":           "buy1get1",
		"product_id":     5,
		"status":         true,
	}
}

func marshalPayload(t *testing.T, payload map[string]interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

func TestNewPromotionDefaults(t *testing.T) {
	promotion := NewPromotion()

	assert.Zero(t, promotion.ID)
	assert.True(t, promotion.Status)
	assert.Equal(t, UnknownPromotion, promotion.PromotionType)
	assert.False(t, promotion.StartDate.IsZero())
}

func TestParsePromotionType(t *testing.T) {
	for _, name := range []string{"AMOUNT_DISCOUNT", "PERCENTAGE_DISCOUNT", "BXGY", "UNKNOWN"} {
		pt, err := ParsePromotionType(name)
		assert.NoError(t, err)
		assert.Equal(t, name, pt.String())
	}
}

func TestParsePromotionType_RejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"discount", "bxgy", "AMOUNT", ""} {
		_, err := ParsePromotionType(name)
		assert.Error(t, err, "expected %q to be rejected", name)

		var validationErr *DataValidationError
		assert.True(t, errors.As(err, &validationErr))
	}
}

func TestDeserialize_ValidPayload(t *testing.T) {
	promotion := NewPromotion()
	err := promotion.Deserialize(marshalPayload(t, validPayload()))
	require.NoError(t, err)

	assert.Equal(t, "Sale", promotion.Name)
	assert.Equal(t, "2024-01-01", promotion.StartDate.Format(DateLayout))
	assert.Equal(t, 10, promotion.Duration)
	assert.Equal(t, BuyXGetY, promotion.PromotionType)
	assert.Equal(t, "buy1get1", promotion.Rule)
	assert.Equal(t, 5, promotion.ProductID)
	assert.True(t, promotion.Status)
}

func TestDeserialize_StatusDefaultsToTrue(t *testing.T) {
	payload := validPayload()
	delete(payload, "status")

	promotion := NewPromotion()
	promotion.Status = false
	err := promotion.Deserialize(marshalPayload(t, payload))
	require.NoError(t, err)
	assert.True(t, promotion.Status)
}

func TestDeserialize_MissingRequiredFields(t *testing.T) {
	required := []string{"name", "start_date", "duration", "promotion_type", "rule", "product_id"}
	for _, key := range required {
		payload := validPayload()
		delete(payload, key)

		promotion := NewPromotion()
		err := promotion.Deserialize(marshalPayload(t, payload))
		require.Error(t, err, "expected missing %s to fail", key)
		assert.Contains(t, err.Error(), key)
	}
}

func TestDeserialize_DurationMustBeInteger(t *testing.T) {
	for _, bad := range []interface{}{"10", 10.5, true} {
		payload := validPayload()
		payload["duration"] = bad

		promotion := NewPromotion()
		err := promotion.Deserialize(marshalPayload(t, payload))
		require.Error(t, err, "expected duration %v to fail", bad)
		assert.Contains(t, err.Error(), "duration")
	}
}

func TestDeserialize_ProductIDMustBeInteger(t *testing.T) {
	payload := validPayload()
	payload["product_id"] = "5"

	promotion := NewPromotion()
	err := promotion.Deserialize(marshalPayload(t, payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product_id")
}

func TestDeserialize_RejectsInvalidPromotionType(t *testing.T) {
	payload := validPayload()
	payload["promotion_type"] = "discount"

	promotion := NewPromotion()
	err := promotion.Deserialize(marshalPayload(t, payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "promotion_type")
}

func TestDeserialize_RejectsNonObjectBody(t *testing.T) {
	promotion := NewPromotion()
	err := promotion.Deserialize([]byte(`"this is not an object"`))
	require.Error(t, err)

	var validationErr *DataValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), "bad or no data")
}

func TestDeserialize_RejectsBadDate(t *testing.T) {
	payload := validPayload()
	payload["start_date"] = "01/01/2024"

	promotion := NewPromotion()
	err := promotion.Deserialize(marshalPayload(t, payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_date")
}

func TestDeserialize_RejectsOverlongName(t *testing.T) {
	payload := validPayload()
	payload["name"] = strings.Repeat("x", 64)

	promotion := NewPromotion()
	err := promotion.Deserialize(marshalPayload(t, payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestSerialize_ContainsEveryField(t *testing.T) {
	promotion := &Promotion{
		ID:            42,
		Name:          "Summer Sale",
		StartDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Duration:      30,
		PromotionType: PercentageDiscount,
		Rule:          "20% off",
		ProductID:     7,
		Status:        true,
	}

	data := promotion.Serialize()
	assert.Equal(t, uint(42), data["id"])
	assert.Equal(t, "Summer Sale", data["name"])
	assert.Equal(t, "2024-06-01", data["start_date"])
	assert.Equal(t, 30, data["duration"])
	assert.Equal(t, "PERCENTAGE_DISCOUNT", data["promotion_type"])
	assert.Equal(t, "20% off", data["rule"])
	assert.Equal(t, 7, data["product_id"])
	assert.Equal(t, true, data["status"])
}

func TestSerialize_NullIDBeforeCreate(t *testing.T) {
	promotion := NewPromotion()
	data := promotion.Serialize()
	assert.Nil(t, data["id"])
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	original := &Promotion{
		ID:            9,
		Name:          "Flash",
		StartDate:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Duration:      3,
		PromotionType: AmountDiscount,
		Rule:          "$5 off",
		ProductID:     11,
		Status:        false,
	}

	data, err := json.Marshal(original.Serialize())
	require.NoError(t, err)

	restored := NewPromotion()
	require.NoError(t, restored.Deserialize(data))

	// id is owned by the store, never the payload
	assert.Zero(t, restored.ID)
	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.StartDate, restored.StartDate)
	assert.Equal(t, original.Duration, restored.Duration)
	assert.Equal(t, original.PromotionType, restored.PromotionType)
	assert.Equal(t, original.Rule, restored.Rule)
	assert.Equal(t, original.ProductID, restored.ProductID)
	assert.Equal(t, original.Status, restored.Status)
}
