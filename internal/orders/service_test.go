package orders

import (
	"context"
	"testing"
	"time"

	"github.com/minhle2212044/greencycle-backend/pkg/db"
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/enums"
	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func setupOrdersService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{}, &models.Customer{}, &models.Center{},
		&models.Material{}, &models.Type{},
		&models.Reward{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.OrderReward{},
	))

	svc, err := NewService(ServiceParams{
		DB:  db.NewFromConn(conn),
		Now: func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return svc, conn
}

func seedCustomer(t *testing.T, conn *gorm.DB, email string, points int) (*models.User, *models.Customer) {
	t.Helper()
	tel := "0123456789"
	address := "3 Depot Ln"
	user := &models.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Dropper",
		Tel:          &tel,
		Address:      &address,
		Role:         enums.UserRoleCustomer,
	}
	require.NoError(t, conn.Create(user).Error)
	customer := &models.Customer{UserID: user.ID, Points: points}
	require.NoError(t, conn.Create(customer).Error)
	return user, customer
}

func seedType(t *testing.T, conn *gorm.DB, name string, points int, hazardous bool) {
	t.Helper()
	material := &models.Material{Name: name + " material", Category: "MIXED"}
	require.NoError(t, conn.Create(material).Error)
	require.NoError(t, conn.Create(&models.Type{
		Name: name, Points: points, IsHazardous: hazardous, MaterialID: material.ID,
	}).Error)
}

func TestCreateMaterialOrderComputesPoints(t *testing.T) {
	svc, conn := setupOrdersService(t)
	ctx := context.Background()

	user, customer := seedCustomer(t, conn, "drop@example.com", 10)
	seedType(t, conn, "cardboard", 5, false)
	seedType(t, conn, "glass bottle", 8, false)

	dto, err := svc.CreateMaterialOrder(ctx, CreateMaterialOrderInput{
		UserID:    user.ID,
		Transport: "PICKUP",
		Date:      testNow,
		Items: []MaterialOrderItemInput{
			{TypeName: "cardboard", Quantity: 2},
			{TypeName: "glass bottle", Quantity: 1},
			{TypeName: "mystery goo", Quantity: 4},
		},
	}, nil)
	require.NoError(t, err)

	// 2x5 + 1x8, the unknown name earns nothing but keeps its line.
	assert.Equal(t, 18, dto.Points)
	assert.Equal(t, "MATERIAL", dto.Type)
	assert.Equal(t, "pending", dto.Status)
	assert.Regexp(t, `^[A-Z]{3}[0-9]{3}$`, dto.Code)
	assert.Len(t, dto.Items, 3)

	var refreshed models.Customer
	require.NoError(t, conn.First(&refreshed, customer.ID).Error)
	assert.Equal(t, 28, refreshed.Points)
}

func TestCreateMaterialOrderUnknownCustomer(t *testing.T) {
	svc, _ := setupOrdersService(t)

	_, err := svc.CreateMaterialOrder(context.Background(), CreateMaterialOrderInput{
		UserID:    999,
		Transport: "PICKUP",
		Date:      testNow,
		Items:     []MaterialOrderItemInput{{TypeName: "cardboard", Quantity: 1}},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateRewardOrderCheckout(t *testing.T) {
	svc, conn := setupOrdersService(t)
	ctx := context.Background()

	user, customer := seedCustomer(t, conn, "redeem@example.com", 100)
	tote := &models.Reward{Name: "Tote bag", Type: "MERCH", Points: 50}
	voucher := &models.Reward{Name: "Coffee voucher", Type: "VOUCHER", Points: 30}
	require.NoError(t, conn.Create(tote).Error)
	require.NoError(t, conn.Create(voucher).Error)
	require.NoError(t, conn.Create(&models.CartItem{CustomerID: customer.ID, RewardID: tote.ID, Quantity: 2}).Error)
	require.NoError(t, conn.Create(&models.CartItem{CustomerID: customer.ID, RewardID: voucher.ID, Quantity: 1}).Error)

	dto, err := svc.CreateRewardOrder(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, -130, dto.Points)
	assert.Equal(t, "REWARD", dto.Type)
	require.NotNil(t, dto.ReceiveDate)
	assert.Equal(t, testNow.Add(7*24*time.Hour), dto.ReceiveDate.UTC())
	require.Len(t, dto.Rewards, 2)
	assert.Equal(t, 2, dto.Rewards[0].Quantity)

	// The balance may go negative and the cart is emptied.
	var refreshed models.Customer
	require.NoError(t, conn.First(&refreshed, customer.ID).Error)
	assert.Equal(t, -30, refreshed.Points)

	var cartCount int64
	require.NoError(t, conn.Model(&models.CartItem{}).Where("customer_id = ?", customer.ID).Count(&cartCount).Error)
	assert.Equal(t, int64(0), cartCount)
}

func TestCreateRewardOrderEmptyCart(t *testing.T) {
	svc, conn := setupOrdersService(t)

	user, _ := seedCustomer(t, conn, "empty@example.com", 40)
	_, err := svc.CreateRewardOrder(context.Background(), user.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestGetAllOrdersNewestFirst(t *testing.T) {
	svc, conn := setupOrdersService(t)
	ctx := context.Background()

	user, _ := seedCustomer(t, conn, "lister@example.com", 0)
	seedType(t, conn, "cardboard", 5, false)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateMaterialOrder(ctx, CreateMaterialOrderInput{
			UserID:    user.ID,
			Transport: "PICKUP",
			Date:      testNow.Add(time.Duration(i) * time.Hour),
			Items:     []MaterialOrderItemInput{{TypeName: "cardboard", Quantity: 1}},
		}, nil)
		require.NoError(t, err)
	}

	page, err := svc.GetAllOrders(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Meta.Total)
	assert.Equal(t, 2, page.Meta.LastPage)
	require.Len(t, page.Data, 2)
	assert.Greater(t, page.Data[0].ID, page.Data[1].ID)
	assert.Equal(t, "Dropper", page.Data[0].CustomerName)
}

func TestRewardOrderDetailComputesTotals(t *testing.T) {
	svc, conn := setupOrdersService(t)
	ctx := context.Background()

	user, customer := seedCustomer(t, conn, "detail@example.com", 100)
	tote := &models.Reward{Name: "Tote bag", Type: "MERCH", Points: 50}
	require.NoError(t, conn.Create(tote).Error)
	require.NoError(t, conn.Create(&models.CartItem{CustomerID: customer.ID, RewardID: tote.ID, Quantity: 3}).Error)

	created, err := svc.CreateRewardOrder(ctx, user.ID)
	require.NoError(t, err)

	detail, err := svc.GetRewardOrderDetail(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, 150, detail.Lines[0].Total)
	assert.Equal(t, 150, detail.Total)
	assert.Equal(t, testNow.Add(7*24*time.Hour).Format("02/01/2006 15:04"), detail.ReceiveTime)
}

func TestDetailRejectsTypeMismatch(t *testing.T) {
	svc, conn := setupOrdersService(t)
	ctx := context.Background()

	user, _ := seedCustomer(t, conn, "mismatch@example.com", 0)
	seedType(t, conn, "cardboard", 5, false)

	material, err := svc.CreateMaterialOrder(ctx, CreateMaterialOrderInput{
		UserID:    user.ID,
		Transport: "PICKUP",
		Date:      testNow,
		Items:     []MaterialOrderItemInput{{TypeName: "cardboard", Quantity: 1}},
	}, nil)
	require.NoError(t, err)

	_, err = svc.GetRewardOrderDetail(ctx, material.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = svc.GetMaterialOrderDetail(ctx, 9999)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestMaterialOrderDetailSenderAndMetadata(t *testing.T) {
	svc, conn := setupOrdersService(t)
	ctx := context.Background()

	user, _ := seedCustomer(t, conn, "sender@example.com", 0)
	seedType(t, conn, "battery", 20, true)

	created, err := svc.CreateMaterialOrder(ctx, CreateMaterialOrderInput{
		UserID:    user.ID,
		Transport: "PICKUP",
		Date:      testNow,
		Items: []MaterialOrderItemInput{
			{TypeName: "battery", Quantity: 2},
			{TypeName: "mystery goo", Quantity: 1},
		},
	}, nil)
	require.NoError(t, err)

	detail, err := svc.GetMaterialOrderDetail(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Dropper", detail.Sender.Name)
	require.NotNil(t, detail.Sender.Tel)
	assert.Equal(t, "0123456789", *detail.Sender.Tel)

	require.Len(t, detail.Items, 2)
	assert.True(t, detail.Items[0].IsHazardous)
	assert.Equal(t, 40, detail.Items[0].Total)
	assert.Equal(t, 0, detail.Items[1].Points)
	assert.Equal(t, 40, detail.Points)
}

func TestGetMaterialOrdersFiltersStatus(t *testing.T) {
	svc, conn := setupOrdersService(t)
	ctx := context.Background()

	user, _ := seedCustomer(t, conn, "filter@example.com", 0)
	seedType(t, conn, "cardboard", 5, false)

	for i, status := range []string{"pending", "completed", "pending"} {
		_, err := svc.CreateMaterialOrder(ctx, CreateMaterialOrderInput{
			UserID:    user.ID,
			Transport: "PICKUP",
			Status:    status,
			Date:      testNow.Add(time.Duration(i) * time.Hour),
			Items:     []MaterialOrderItemInput{{TypeName: "cardboard", Quantity: 1}},
		}, nil)
		require.NoError(t, err)
	}

	pending, err := svc.GetMaterialOrders(ctx, user.ID, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.True(t, pending[0].Date.After(pending[1].Date))

	all, err := svc.GetMaterialOrders(ctx, user.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	rewardsOnly, err := svc.GetRewardOrders(ctx, user.ID, "")
	require.NoError(t, err)
	assert.Empty(t, rewardsOnly)

	_, err = svc.GetMaterialOrders(ctx, user.ID, "bogus")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
