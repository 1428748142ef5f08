package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"promotions-api/internal/logger"
	"promotions-api/internal/models"
)

// PromotionRepository owns every durable Promotion record. Handlers only see
// transient in-memory records; all store access funnels through here.
type PromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository creates a repository bound to the given gorm handle.
func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

// Create persists a new promotion. Any caller-supplied id is discarded; the
// store assigns one. The write runs in its own transaction and is rolled back
// on failure.
func (r *PromotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	logger.Info("Creating promotion", zap.String("name", promotion.Name))

	promotion.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(promotion).Error
	})
	if err != nil {
		logger.Error("Error creating record", zap.String("name", promotion.Name), zap.Error(err))
		return models.WrapDataValidationError(errors.Wrap(err, "create promotion"), err.Error())
	}
	return nil
}

// Update saves every field of an existing promotion. A record that has never
// been created cannot be updated; that fails before the store is touched.
func (r *PromotionRepository) Update(ctx context.Context, promotion *models.Promotion) error {
	logger.Info("Saving promotion", zap.String("name", promotion.Name), zap.Uint("id", promotion.ID))

	if promotion.ID == 0 {
		return models.NewDataValidationError("Update called with empty ID field")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(promotion).Error
	})
	if err != nil {
		logger.Error("Error updating record", zap.Uint("id", promotion.ID), zap.Error(err))
		return models.WrapDataValidationError(errors.Wrap(err, "update promotion"), err.Error())
	}
	return nil
}

// Delete removes a promotion by identity. Deleting a record that is already
// gone is not an error.
func (r *PromotionRepository) Delete(ctx context.Context, promotion *models.Promotion) error {
	logger.Info("Deleting promotion", zap.Uint("id", promotion.ID))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Promotion{}, promotion.ID).Error
	})
	if err != nil {
		logger.Error("Error deleting record", zap.Uint("id", promotion.ID), zap.Error(err))
		return models.WrapDataValidationError(errors.Wrap(err, "delete promotion"), err.Error())
	}
	return nil
}

// Find looks up a promotion by id. A missing row is reported as a nil record,
// not an error.
func (r *PromotionRepository) Find(ctx context.Context, id uint) (*models.Promotion, error) {
	logger.Info("Processing lookup", zap.Uint("id", id))

	var promotion models.Promotion
	err := r.db.WithContext(ctx).First(&promotion, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error("Error finding record", zap.Uint("id", id), zap.Error(err))
		return nil, models.WrapDataValidationError(errors.Wrap(err, "find promotion"), err.Error())
	}
	return &promotion, nil
}

// All returns every promotion in the store.
func (r *PromotionRepository) All(ctx context.Context) ([]models.Promotion, error) {
	logger.Info("Listing all promotions")
	return r.list(r.db.WithContext(ctx))
}

// FindByName returns the promotions whose name equals the given value.
func (r *PromotionRepository) FindByName(ctx context.Context, name string) ([]models.Promotion, error) {
	logger.Info("Processing name query", zap.String("name", name))
	return r.list(r.db.WithContext(ctx).Where("name = ?", name))
}

// FindByProductID returns the promotions attached to the given product.
func (r *PromotionRepository) FindByProductID(ctx context.Context, productID int) ([]models.Promotion, error) {
	logger.Info("Processing product_id query", zap.Int("product_id", productID))
	return r.list(r.db.WithContext(ctx).Where("product_id = ?", productID))
}

// FindByStartDate returns the promotions starting exactly on the given date.
func (r *PromotionRepository) FindByStartDate(ctx context.Context, startDate time.Time) ([]models.Promotion, error) {
	logger.Info("Processing start_date query", zap.String("start_date", startDate.Format(models.DateLayout)))
	return r.list(r.db.WithContext(ctx).Where("start_date = ?", startDate))
}

// FindByPromotionType returns the promotions of the given type.
func (r *PromotionRepository) FindByPromotionType(ctx context.Context, promotionType models.PromotionType) ([]models.Promotion, error) {
	logger.Info("Processing promotion_type query", zap.String("promotion_type", promotionType.String()))
	return r.list(r.db.WithContext(ctx).Where("promotion_type = ?", promotionType))
}

// FindByStatus returns the promotions whose active flag equals the given value.
func (r *PromotionRepository) FindByStatus(ctx context.Context, status bool) ([]models.Promotion, error) {
	logger.Info("Processing status query", zap.Bool("status", status))
	return r.list(r.db.WithContext(ctx).Where("status = ?", status))
}

// Activate flips the promotion on and persists just that field.
func (r *PromotionRepository) Activate(ctx context.Context, promotion *models.Promotion) error {
	return r.setStatus(ctx, promotion, true)
}

// Deactivate flips the promotion off and persists just that field.
func (r *PromotionRepository) Deactivate(ctx context.Context, promotion *models.Promotion) error {
	return r.setStatus(ctx, promotion, false)
}

func (r *PromotionRepository) setStatus(ctx context.Context, promotion *models.Promotion, status bool) error {
	logger.Info("Setting promotion status", zap.Uint("id", promotion.ID), zap.Bool("status", status))

	if promotion.ID == 0 {
		return models.NewDataValidationError("Update called with empty ID field")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Promotion{}).Where("id = ?", promotion.ID).Update("status", status).Error
	})
	if err != nil {
		logger.Error("Error updating status", zap.Uint("id", promotion.ID), zap.Error(err))
		return models.WrapDataValidationError(errors.Wrap(err, "update promotion status"), err.Error())
	}
	promotion.Status = status
	return nil
}

func (r *PromotionRepository) list(query *gorm.DB) ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := query.Find(&promotions).Error; err != nil {
		logger.Error("Error listing records", zap.Error(err))
		return nil, models.WrapDataValidationError(errors.Wrap(err, "list promotions"), err.Error())
	}
	return promotions, nil
}
