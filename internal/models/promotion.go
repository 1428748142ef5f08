package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the wire format for promotion dates (ISO-8601, date only).
const DateLayout = "2006-01-02"

// maxFieldLength caps the name and rule columns.
const maxFieldLength = 63

// DataValidationError is returned when a promotion payload cannot be
// deserialized, or when the backing store rejects a write.
type DataValidationError struct {
	Message string
	Cause   error
}

func (e *DataValidationError) Error() string {
	return e.Message
}

func (e *DataValidationError) Unwrap() error {
	return e.Cause
}

// NewDataValidationError creates a DataValidationError with a formatted message.
func NewDataValidationError(format string, args ...interface{}) *DataValidationError {
	return &DataValidationError{Message: fmt.Sprintf(format, args...)}
}

// WrapDataValidationError attaches an underlying cause to a validation error,
// keeping the cause available through errors.Unwrap.
func WrapDataValidationError(cause error, message string) *DataValidationError {
	return &DataValidationError{Message: message, Cause: cause}
}

// PromotionType classifies the discount mechanism of a promotion.
type PromotionType string

const (
	AmountDiscount     PromotionType = "AMOUNT_DISCOUNT"    // e.g. $30 off
	PercentageDiscount PromotionType = "PERCENTAGE_DISCOUNT" // e.g. 20% off
	BuyXGetY           PromotionType = "BXGY"               // buy X get Y free
	UnknownPromotion   PromotionType = "UNKNOWN"
)

// promotionTypes is the closed set of valid enum names.
var promotionTypes = map[PromotionType]struct{}{
	AmountDiscount:     {},
	PercentageDiscount: {},
	BuyXGetY:           {},
	UnknownPromotion:   {},
}

// ParsePromotionType maps a string onto the closed PromotionType set.
// Matching is exact and case-sensitive; anything outside the set fails.
func ParsePromotionType(value string) (PromotionType, error) {
	pt := PromotionType(value)
	if _, ok := promotionTypes[pt]; !ok {
		return "", NewDataValidationError("Invalid promotion_type [%s]: must be one of AMOUNT_DISCOUNT, PERCENTAGE_DISCOUNT, BXGY, UNKNOWN", value)
	}
	return pt, nil
}

func (t PromotionType) String() string {
	return string(t)
}

// Promotion represents a time-bounded discount rule applied to a product.
// It is a plain data record; all persistence lives in the repository package.
type Promotion struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"size:63;not null" json:"name"`
	StartDate     time.Time     `gorm:"type:date;not null" json:"start_date"`
	Duration      int           `gorm:"not null" json:"duration"`
	PromotionType PromotionType `gorm:"size:32;not null;default:UNKNOWN" json:"promotion_type"`
	Rule          string        `gorm:"size:63;not null" json:"rule"`
	ProductID     int           `gorm:"not null" json:"product_id"`
	Status        bool          `gorm:"not null;default:true" json:"status"`
}

// NewPromotion returns a blank record with the documented defaults applied:
// start date is today and the promotion is active.
func NewPromotion() *Promotion {
	return &Promotion{
		StartDate:     time.Now().UTC().Truncate(24 * time.Hour),
		PromotionType: UnknownPromotion,
		Status:        true,
	}
}

// Serialize converts a Promotion into its wire-level representation.
// Every field is present; the id is null until the store has assigned one.
func (p *Promotion) Serialize() map[string]interface{} {
	var id interface{}
	if p.ID != 0 {
		id = p.ID
	}
	return map[string]interface{}{
		"id":             id,
		"name":           p.Name,
		"start_date":     p.StartDate.Format(DateLayout),
		"duration":       p.Duration,
		"promotion_type": p.PromotionType.String(),
		"rule":           p.Rule,
		"product_id":     p.ProductID,
		"status":         p.Status,
	}
}

// Deserialize populates a Promotion from a JSON payload. The id field is
// never read from the payload; it is owned by the store. On failure the
// record is left untouched and a DataValidationError describes the first
// offending field.
func (p *Promotion) Deserialize(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return WrapDataValidationError(err, "Invalid Promotion: body of request contained bad or no data")
	}

	name, err := requireString(raw, "name")
	if err != nil {
		return err
	}
	if name == "" {
		return NewDataValidationError("Invalid Promotion: name must not be empty")
	}
	if len(name) > maxFieldLength {
		return NewDataValidationError("Invalid Promotion: name exceeds %d characters", maxFieldLength)
	}

	dateStr, err := requireString(raw, "start_date")
	if err != nil {
		return err
	}
	startDate, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return WrapDataValidationError(err, fmt.Sprintf("Invalid date format for [start_date]: %s", dateStr))
	}

	duration, err := requireInt(raw, "duration")
	if err != nil {
		return err
	}

	typeStr, err := requireString(raw, "promotion_type")
	if err != nil {
		return err
	}
	promotionType, err := ParsePromotionType(typeStr)
	if err != nil {
		return err
	}

	rule, err := requireString(raw, "rule")
	if err != nil {
		return err
	}
	if len(rule) > maxFieldLength {
		return NewDataValidationError("Invalid Promotion: rule exceeds %d characters", maxFieldLength)
	}

	productID, err := requireInt(raw, "product_id")
	if err != nil {
		return err
	}

	status := true
	if v, ok := raw["status"]; ok {
		b, ok := v.(bool)
		if !ok {
			return NewDataValidationError("Invalid type for boolean [status]: %T", v)
		}
		status = b
	}

	p.Name = name
	p.StartDate = startDate
	p.Duration = duration
	p.PromotionType = promotionType
	p.Rule = rule
	p.ProductID = productID
	p.Status = status
	return nil
}

func requireString(raw map[string]interface{}, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", NewDataValidationError("Invalid Promotion: missing %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", NewDataValidationError("Invalid type for string [%s]: %T", key, v)
	}
	return s, nil
}

// requireInt enforces that the payload carried a JSON number with no
// fractional part. Numeric strings are rejected.
func requireInt(raw map[string]interface{}, key string) (int, error) {
	v, ok := raw[key]
	if !ok {
		return 0, NewDataValidationError("Invalid Promotion: missing %s", key)
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, NewDataValidationError("Invalid type for integer [%s]: %T", key, v)
	}
	n, err := strconv.Atoi(num.String())
	if err != nil {
		return 0, NewDataValidationError("Invalid type for integer [%s]: %s", key, num.String())
	}
	return n, nil
}
