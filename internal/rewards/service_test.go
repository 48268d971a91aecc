package rewards

import (
	"context"
	"testing"

	"github.com/minhle2212044/greencycle-backend/pkg/db"
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/enums"
	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRewardsService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{}, &models.Customer{},
		&models.Reward{}, &models.CustomerReward{}, &models.CartItem{},
	))

	svc, err := NewService(ServiceParams{DB: db.NewFromConn(conn)})
	require.NoError(t, err)
	return svc, conn
}

func seedCustomer(t *testing.T, conn *gorm.DB, email string, points int) (*models.User, *models.Customer) {
	t.Helper()
	address := "5 Recycle Way"
	user := &models.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Shopper",
		Address:      &address,
		Role:         enums.UserRoleCustomer,
	}
	require.NoError(t, conn.Create(user).Error)
	customer := &models.Customer{UserID: user.ID, Points: points}
	require.NoError(t, conn.Create(customer).Error)
	return user, customer
}

func seedReward(t *testing.T, conn *gorm.DB, name, rewardType string, points int) *models.Reward {
	t.Helper()
	reward := &models.Reward{Name: name, Type: rewardType, Points: points}
	require.NoError(t, conn.Create(reward).Error)
	return reward
}

func TestListAnnotatesFavorites(t *testing.T) {
	svc, conn := setupRewardsService(t)
	ctx := context.Background()

	user, customer := seedCustomer(t, conn, "fav@example.com", 100)
	liked := seedReward(t, conn, "Tote bag", "MERCH", 50)
	seedReward(t, conn, "Coffee voucher", "VOUCHER", 30)
	require.NoError(t, conn.Create(&models.CustomerReward{CustomerID: customer.ID, RewardID: liked.ID}).Error)

	page, err := svc.List(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.True(t, page.Data[0].IsFavorite)
	assert.False(t, page.Data[1].IsFavorite)
}

func TestListByTypeIsCaseInsensitive(t *testing.T) {
	svc, conn := setupRewardsService(t)
	ctx := context.Background()

	user, _ := seedCustomer(t, conn, "filter@example.com", 0)
	seedReward(t, conn, "Tote bag", "MERCH", 50)
	seedReward(t, conn, "Sticker pack", "merch", 10)
	seedReward(t, conn, "Coffee voucher", "VOUCHER", 30)

	page, err := svc.ListByType(ctx, user.ID, "Merch", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Data, 2)
}

func TestToggleFavoriteFlips(t *testing.T) {
	svc, conn := setupRewardsService(t)
	ctx := context.Background()

	user, _ := seedCustomer(t, conn, "toggle@example.com", 0)
	reward := seedReward(t, conn, "Tote bag", "MERCH", 50)

	added, err := svc.ToggleFavorite(ctx, user.ID, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, "added", added.Message)

	removed, err := svc.ToggleFavorite(ctx, user.ID, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, "removed", removed.Message)

	var count int64
	require.NoError(t, conn.Model(&models.CustomerReward{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestToggleFavoriteUnknownReward(t *testing.T) {
	svc, conn := setupRewardsService(t)

	user, _ := seedCustomer(t, conn, "nothing@example.com", 0)
	_, err := svc.ToggleFavorite(context.Background(), user.ID, 999)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestGetByIDWithoutCustomerDefaultsFavoriteFalse(t *testing.T) {
	svc, conn := setupRewardsService(t)
	ctx := context.Background()

	user := &models.User{Email: "coll@example.com", PasswordHash: "h", Name: "N", Role: enums.UserRoleCollector}
	require.NoError(t, conn.Create(user).Error)
	reward := seedReward(t, conn, "Tote bag", "MERCH", 50)

	dto, err := svc.GetByID(ctx, user.ID, reward.ID)
	require.NoError(t, err)
	assert.False(t, dto.IsFavorite)
}

func TestGetByIDSurfacesFavoriteLookupFailure(t *testing.T) {
	svc, conn := setupRewardsService(t)
	ctx := context.Background()

	user, _ := seedCustomer(t, conn, "broken@example.com", 0)
	reward := seedReward(t, conn, "Tote bag", "MERCH", 50)
	require.NoError(t, conn.Migrator().DropTable(&models.CustomerReward{}))

	_, err := svc.GetByID(ctx, user.ID, reward.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestAddToCartInsertsThenIncrements(t *testing.T) {
	svc, conn := setupRewardsService(t)
	ctx := context.Background()

	user, customer := seedCustomer(t, conn, "cart@example.com", 0)
	reward := seedReward(t, conn, "Tote bag", "MERCH", 50)

	first, err := svc.AddToCart(ctx, user.ID, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, "Item added to cart", first.Message)

	second, err := svc.AddToCart(ctx, user.ID, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quantity increased", second.Message)

	var item models.CartItem
	require.NoError(t, conn.Where("customer_id = ? AND reward_id = ?", customer.ID, reward.ID).First(&item).Error)
	assert.Equal(t, 2, item.Quantity)
}

func TestDecrementQuantityDeletesAtOne(t *testing.T) {
	svc, conn := setupRewardsService(t)
	ctx := context.Background()

	user, customer := seedCustomer(t, conn, "dec@example.com", 0)
	reward := seedReward(t, conn, "Tote bag", "MERCH", 50)
	require.NoError(t, conn.Create(&models.CartItem{
		CustomerID: customer.ID, RewardID: reward.ID, Quantity: 2,
	}).Error)

	down, err := svc.DecrementQuantity(ctx, user.ID, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quantity decreased", down.Message)

	gone, err := svc.DecrementQuantity(ctx, user.ID, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, "Item removed from cart", gone.Message)

	var count int64
	require.NoError(t, conn.Model(&models.CartItem{}).Where("customer_id = ?", customer.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestIncrementQuantityMissingLine(t *testing.T) {
	svc, conn := setupRewardsService(t)

	user, _ := seedCustomer(t, conn, "missing@example.com", 0)
	_, err := svc.IncrementQuantity(context.Background(), user.ID, 404)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCartSummaryAggregates(t *testing.T) {
	svc, conn := setupRewardsService(t)
	ctx := context.Background()

	user, customer := seedCustomer(t, conn, "summary@example.com", 120)
	tote := seedReward(t, conn, "Tote bag", "MERCH", 50)
	voucher := seedReward(t, conn, "Coffee voucher", "VOUCHER", 30)
	require.NoError(t, conn.Create(&models.CartItem{CustomerID: customer.ID, RewardID: tote.ID, Quantity: 2}).Error)
	require.NoError(t, conn.Create(&models.CartItem{CustomerID: customer.ID, RewardID: voucher.ID, Quantity: 1}).Error)

	summary, err := svc.CartSummary(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalQuantity)
	assert.Equal(t, 130, summary.TotalPoints)
	assert.Equal(t, 120, summary.Points)
	require.NotNil(t, summary.Address)
	assert.Equal(t, "5 Recycle Way", *summary.Address)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, 100, summary.Items[0].Total)
}

func TestCartOpsRequireCustomer(t *testing.T) {
	svc, conn := setupRewardsService(t)
	ctx := context.Background()

	// A bare user row without the customer extension cannot hold a cart.
	user := &models.User{Email: "plain@example.com", PasswordHash: "h", Name: "N", Role: enums.UserRoleCollector}
	require.NoError(t, conn.Create(user).Error)
	reward := seedReward(t, conn, "Tote bag", "MERCH", 50)

	_, err := svc.AddToCart(ctx, user.ID, reward.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
