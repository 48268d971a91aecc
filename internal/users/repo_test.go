package users

import (
	"context"
	"testing"
	"time"

	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/enums"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{}, &models.Customer{}, &models.Collector{},
		&models.Material{}, &models.Type{},
		&models.Order{}, &models.OrderItem{},
	))
	return conn
}

func seedCustomerUser(t *testing.T, conn *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Test Customer",
		Role:         enums.UserRoleCustomer,
	}
	require.NoError(t, conn.Create(user).Error)
	require.NoError(t, conn.Create(&models.Customer{UserID: user.ID}).Error)
	return user
}

func TestFindByIDPreloadsExtension(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	user := seedCustomerUser(t, conn, "a@b.c")

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Customer)
	assert.Equal(t, 0, got.Customer.Points)
	assert.Nil(t, got.Collector)
}

func TestListPaginates(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seedCustomerUser(t, conn, "one@b.c")
	seedCustomerUser(t, conn, "two@b.c")
	seedCustomerUser(t, conn, "three@b.c")

	rows, total, err := repo.List(ctx, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "three@b.c", rows[0].Email)
}

func TestUpdateMissingUserReturnsNotFound(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)

	err := repo.Update(context.Background(), 999, map[string]any{"name": "Nobody"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteRemovesUser(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	user := seedCustomerUser(t, conn, "del@b.c")
	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecycleStatsGroupsByCategory(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	user := seedCustomerUser(t, conn, "stats@b.c")
	var customer models.Customer
	require.NoError(t, conn.First(&customer, "user_id = ?", user.ID).Error)

	plastic := models.Material{Name: "Plastic", Category: "PLASTIC"}
	paper := models.Material{Name: "Paper", Category: "PAPER"}
	require.NoError(t, conn.Create(&plastic).Error)
	require.NoError(t, conn.Create(&paper).Error)
	require.NoError(t, conn.Create(&models.Type{Name: "PET bottle", Points: 10, MaterialID: plastic.ID}).Error)
	require.NoError(t, conn.Create(&models.Type{Name: "Cardboard", Points: 5, MaterialID: paper.ID}).Error)

	order := models.Order{
		Code:       "ABC123",
		CustomerID: customer.ID,
		Transport:  "DROP_OFF",
		Status:     enums.OrderStatusCompleted,
		Points:     35,
		Type:       enums.OrderTypeMaterial,
		Date:       time.Now(),
		Items: []models.OrderItem{
			{TypeName: "PET bottle", Quantity: 3},
			{TypeName: "Cardboard", Quantity: 1},
		},
	}
	require.NoError(t, conn.Create(&order).Error)

	rows, err := repo.RecycleStats(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PAPER", rows[0].Category)
	assert.Equal(t, 1, rows[0].TotalKg)
	assert.Equal(t, "PLASTIC", rows[1].Category)
	assert.Equal(t, 3, rows[1].TotalKg)
}
