package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"promotions-api/internal/models"
)

func newTestRepository(t *testing.T) *PromotionRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Promotion{}))
	return NewPromotionRepository(db)
}

// promotionFixture builds a distinct valid record per sequence number.
func promotionFixture(n int) *models.Promotion {
	return &models.Promotion{
		Name:          fmt.Sprintf("Promo %d", n),
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n),
		Duration:      10 + n,
		PromotionType: models.BuyXGetY,
		Rule:          "buy1get1",
		ProductID:     100 + n,
		Status:        true,
	}
}

func seedPromotions(t *testing.T, repo *PromotionRepository, count int) []*models.Promotion {
	t.Helper()
	seeded := make([]*models.Promotion, 0, count)
	for i := 0; i < count; i++ {
		promotion := promotionFixture(i)
		require.NoError(t, repo.Create(context.Background(), promotion))
		seeded = append(seeded, promotion)
	}
	return seeded
}

func TestCreateAssignsDistinctIDs(t *testing.T) {
	repo := newTestRepository(t)

	first := promotionFixture(1)
	second := promotionFixture(2)
	require.NoError(t, repo.Create(context.Background(), first))
	require.NoError(t, repo.Create(context.Background(), second))

	assert.NotZero(t, first.ID)
	assert.NotZero(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateIgnoresCallerSuppliedID(t *testing.T) {
	repo := newTestRepository(t)

	promotion := promotionFixture(1)
	promotion.ID = 999
	require.NoError(t, repo.Create(context.Background(), promotion))

	assert.NotEqual(t, uint(999), promotion.ID)
	assert.NotZero(t, promotion.ID)
}

func TestFindReturnsRecord(t *testing.T) {
	repo := newTestRepository(t)
	created := seedPromotions(t, repo, 1)[0]

	found, err := repo.Find(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.Name, found.Name)
	assert.Equal(t, created.ProductID, found.ProductID)
}

func TestFindAbsentReturnsNilWithoutError(t *testing.T) {
	repo := newTestRepository(t)

	found, err := repo.Find(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUpdatePersistsChanges(t *testing.T) {
	repo := newTestRepository(t)
	created := seedPromotions(t, repo, 1)[0]

	created.Name = "Renamed"
	created.Duration = 99
	require.NoError(t, repo.Update(context.Background(), created))

	found, err := repo.Find(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Renamed", found.Name)
	assert.Equal(t, 99, found.Duration)
}

func TestUpdateWithEmptyIDFails(t *testing.T) {
	repo := newTestRepository(t)
	seedPromotions(t, repo, 1)

	promotion := promotionFixture(5)
	err := repo.Update(context.Background(), promotion)
	require.Error(t, err)
	assert.Equal(t, "Update called with empty ID field", err.Error())

	// the failed update never reached the store
	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteRemovesRecord(t *testing.T) {
	repo := newTestRepository(t)
	created := seedPromotions(t, repo, 1)[0]

	require.NoError(t, repo.Delete(context.Background(), created))

	found, err := repo.Find(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDeleteAbsentRecordIsNoop(t *testing.T) {
	repo := newTestRepository(t)

	promotion := &models.Promotion{ID: 777}
	assert.NoError(t, repo.Delete(context.Background(), promotion))
}

func TestAllReturnsEveryRecord(t *testing.T) {
	repo := newTestRepository(t)
	seedPromotions(t, repo, 5)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestAllReflectsCreatesMinusDeletes(t *testing.T) {
	repo := newTestRepository(t)
	seeded := seedPromotions(t, repo, 4)
	require.NoError(t, repo.Delete(context.Background(), seeded[1]))

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFindByName(t *testing.T) {
	repo := newTestRepository(t)
	seedPromotions(t, repo, 3)

	matches, err := repo.FindByName(context.Background(), "Promo 1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Promo 1", matches[0].Name)
}

func TestFindByProductID(t *testing.T) {
	repo := newTestRepository(t)
	seedPromotions(t, repo, 3)

	matches, err := repo.FindByProductID(context.Background(), 102)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 102, matches[0].ProductID)
}

func TestFindByStartDate(t *testing.T) {
	repo := newTestRepository(t)
	seedPromotions(t, repo, 3)

	target := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	matches, err := repo.FindByStartDate(context.Background(), target)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, target, matches[0].StartDate.UTC())
}

func TestFindByPromotionTypeReturnsExactSubset(t *testing.T) {
	repo := newTestRepository(t)
	seedPromotions(t, repo, 2)

	other := promotionFixture(10)
	other.PromotionType = models.PercentageDiscount
	require.NoError(t, repo.Create(context.Background(), other))

	matches, err := repo.FindByPromotionType(context.Background(), models.BuyXGetY)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	for _, match := range matches {
		assert.Equal(t, models.BuyXGetY, match.PromotionType)
	}
}

func TestFindByStatus(t *testing.T) {
	repo := newTestRepository(t)
	seedPromotions(t, repo, 2)

	inactive := promotionFixture(20)
	inactive.Status = false
	require.NoError(t, repo.Create(context.Background(), inactive))

	active, err := repo.FindByStatus(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	disabled, err := repo.FindByStatus(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, disabled, 1)
	assert.False(t, disabled[0].Status)
}

func TestActivateAndDeactivate(t *testing.T) {
	repo := newTestRepository(t)
	created := seedPromotions(t, repo, 1)[0]

	require.NoError(t, repo.Deactivate(context.Background(), created))
	assert.False(t, created.Status)

	found, err := repo.Find(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.Status)

	require.NoError(t, repo.Activate(context.Background(), created))
	assert.True(t, created.Status)

	found, err = repo.Find(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Status)
}

func TestSetStatusWithEmptyIDFails(t *testing.T) {
	repo := newTestRepository(t)

	promotion := promotionFixture(1)
	err := repo.Activate(context.Background(), promotion)
	require.Error(t, err)
	assert.Equal(t, "Update called with empty ID field", err.Error())
}
