package orders

import (
	"context"
	"errors"
	"time"

	"github.com/minhle2212044/greencycle-backend/internal/rewards"
	"github.com/minhle2212044/greencycle-backend/pkg/db"
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/enums"
	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"github.com/minhle2212044/greencycle-backend/pkg/storage/gcs"
	"gorm.io/gorm"
)

const (
	imageFolder = "orders"

	// Redemption defaults: rewards are delivered, one week out.
	rewardTransport   = "DELIVERY"
	rewardReceiveLead = 7 * 24 * time.Hour
)

// ServiceParams groups dependencies for the orders service. Uploader may be
// nil when image uploads are disabled.
type ServiceParams struct {
	DB       *db.Client
	Uploader gcs.Uploader
	Now      func() time.Time
}

// Service exposes order creation and reporting operations.
type Service interface {
	CreateMaterialOrder(ctx context.Context, input CreateMaterialOrderInput, image *gcs.File) (OrderDTO, error)
	CreateRewardOrder(ctx context.Context, userID int64) (OrderDTO, error)
	GetAllOrders(ctx context.Context, page, limit int) (OrdersPageDTO, error)
	GetOrderByID(ctx context.Context, id int64) (OrderDTO, error)
	GetRewardOrderDetail(ctx context.Context, id int64) (RewardOrderDetailDTO, error)
	GetMaterialOrderDetail(ctx context.Context, id int64) (MaterialOrderDetailDTO, error)
	GetRewardOrders(ctx context.Context, userID int64, status string) ([]OrderDTO, error)
	GetMaterialOrders(ctx context.Context, userID int64, status string) ([]OrderDTO, error)
}

type service struct {
	db       *db.Client
	uploader gcs.Uploader
	now      func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{db: params.DB, uploader: params.Uploader, now: now}, nil
}

// CreateMaterialOrder records a drop-off. Points are the sum of
// type.points x quantity over the lines whose names resolve; unresolvable
// names keep their line but earn nothing. The order and the balance update
// commit together.
func (s *service) CreateMaterialOrder(ctx context.Context, input CreateMaterialOrderInput, image *gcs.File) (OrderDTO, error) {
	status := enums.OrderStatusPending
	if input.Status != "" {
		parsed, err := enums.ParseOrderStatus(input.Status)
		if err != nil {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		status = parsed
	}

	imageURL, err := gcs.UploadFile(ctx, s.uploader, imageFolder, image)
	if err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload order image")
	}

	code, err := newOrderCode()
	if err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order code")
	}

	var created *models.Order
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		customer, err := repo.FindCustomerByUserID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "customer not found")
			}
			return err
		}

		names := make([]string, 0, len(input.Items))
		for _, item := range input.Items {
			names = append(names, item.TypeName)
		}
		typePoints, err := repo.TypePoints(ctx, names)
		if err != nil {
			return err
		}

		total := 0
		items := make([]models.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			total += typePoints[item.TypeName] * item.Quantity
			items = append(items, models.OrderItem{TypeName: item.TypeName, Quantity: item.Quantity})
		}

		order := &models.Order{
			Code:       code,
			CustomerID: customer.ID,
			CenterID:   input.CenterID,
			Transport:  input.Transport,
			Status:     status,
			Points:     total,
			Type:       enums.OrderTypeMaterial,
			Date:       input.Date,
			Note:       input.Note,
			Schedule:   input.Schedule,
			ImageURL:   imageURL,
			Items:      items,
		}
		if err := repo.Create(ctx, order); err != nil {
			return err
		}
		if err := repo.AddCustomerPoints(ctx, customer.ID, total); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return OrderDTO{}, wrapOrderErr(err, "create material order")
	}
	return toOrderDTO(created), nil
}

// CreateRewardOrder checks out the customer's cart. The redemption order is
// priced as the negative cart total, the balance is decremented by the same
// amount and the cart is cleared, all in one transaction. Balances are
// allowed to go negative.
func (s *service) CreateRewardOrder(ctx context.Context, userID int64) (OrderDTO, error) {
	code, err := newOrderCode()
	if err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order code")
	}

	var created *models.Order
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		cartRepo := rewards.NewRepository(tx)

		customer, err := repo.FindCustomerByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "customer not found")
			}
			return err
		}

		cart, err := cartRepo.ListCart(ctx, customer.ID)
		if err != nil {
			return err
		}
		if len(cart) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		total := 0
		lines := make([]models.OrderReward, 0, len(cart))
		for _, item := range cart {
			if item.Reward != nil {
				total += item.Reward.Points * item.Quantity
			}
			lines = append(lines, models.OrderReward{RewardID: item.RewardID, Quantity: item.Quantity})
		}

		now := s.now()
		receive := now.Add(rewardReceiveLead)
		order := &models.Order{
			Code:        code,
			CustomerID:  customer.ID,
			Transport:   rewardTransport,
			Status:      enums.OrderStatusPending,
			Points:      -total,
			Type:        enums.OrderTypeReward,
			Date:        now,
			ReceiveDate: &receive,
			Rewards:     lines,
		}
		if err := repo.Create(ctx, order); err != nil {
			return err
		}
		if err := repo.AddCustomerPoints(ctx, customer.ID, -total); err != nil {
			return err
		}
		if err := cartRepo.ClearCart(ctx, customer.ID); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return OrderDTO{}, wrapOrderErr(err, "create reward order")
	}
	return s.GetOrderByID(ctx, created.ID)
}

func (s *service) GetAllOrders(ctx context.Context, page, limit int) (OrdersPageDTO, error) {
	p := pagination.Normalize(page, limit)
	repo := NewRepository(s.db.DB())

	orders, total, err := repo.ListAll(ctx, p)
	if err != nil {
		return OrdersPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	data := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		data = append(data, toOrderDTO(&orders[i]))
	}
	return OrdersPageDTO{Data: data, Meta: pagination.NewMeta(total, p)}, nil
}

func (s *service) GetOrderByID(ctx context.Context, id int64) (OrderDTO, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return OrderDTO{}, err
	}
	return toOrderDTO(order), nil
}

// GetRewardOrderDetail builds the redemption receipt. A material order id is
// NOT_FOUND here, not a different shape.
func (s *service) GetRewardOrderDetail(ctx context.Context, id int64) (RewardOrderDetailDTO, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return RewardOrderDetailDTO{}, err
	}
	if order.Type != enums.OrderTypeReward {
		return RewardOrderDetailDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "reward order not found")
	}

	detail := RewardOrderDetailDTO{
		ID:     order.ID,
		Code:   order.Code,
		Status: string(order.Status),
		Date:   order.Date,
		Lines:  make([]RewardOrderLineDTO, 0, len(order.Rewards)),
	}
	if order.ReceiveDate != nil {
		detail.ReceiveTime = order.ReceiveDate.Format(receiveTimeLayout)
	}
	for _, line := range order.Rewards {
		dto := RewardOrderLineDTO{RewardID: line.RewardID, Quantity: line.Quantity}
		if line.Reward != nil {
			dto.Name = line.Reward.Name
			dto.ImageURL = line.Reward.ImageURL
			dto.Points = line.Reward.Points
			dto.Total = line.Reward.Points * line.Quantity
		}
		detail.Total += dto.Total
		detail.Lines = append(detail.Lines, dto)
	}
	return detail, nil
}

// GetMaterialOrderDetail builds the drop-off receipt with sender contact
// info and catalog metadata resolved per line.
func (s *service) GetMaterialOrderDetail(ctx context.Context, id int64) (MaterialOrderDetailDTO, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return MaterialOrderDetailDTO{}, err
	}
	if order.Type != enums.OrderTypeMaterial {
		return MaterialOrderDetailDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "material order not found")
	}

	repo := NewRepository(s.db.DB())
	names := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		names = append(names, item.TypeName)
	}
	catalog, err := repo.TypesByName(ctx, names)
	if err != nil {
		return MaterialOrderDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve item types")
	}

	detail := MaterialOrderDetailDTO{
		ID:        order.ID,
		Code:      order.Code,
		Status:    string(order.Status),
		Transport: order.Transport,
		Date:      order.Date,
		Points:    order.Points,
		Note:      order.Note,
		Schedule:  order.Schedule,
		ImageURL:  order.ImageURL,
		Items:     make([]MaterialOrderLineDTO, 0, len(order.Items)),
	}
	if order.Customer != nil && order.Customer.User != nil {
		user := order.Customer.User
		detail.Sender = SenderDTO{Name: user.Name, Tel: user.Tel, Address: user.Address}
	}
	for _, item := range order.Items {
		line := MaterialOrderLineDTO{TypeName: item.TypeName, Quantity: item.Quantity}
		if typ, ok := catalog[item.TypeName]; ok {
			line.Points = typ.Points
			line.IsHazardous = typ.IsHazardous
			line.Total = typ.Points * item.Quantity
		}
		detail.Items = append(detail.Items, line)
	}
	return detail, nil
}

func (s *service) GetRewardOrders(ctx context.Context, userID int64, status string) ([]OrderDTO, error) {
	return s.listForUser(ctx, userID, enums.OrderTypeReward, status)
}

func (s *service) GetMaterialOrders(ctx context.Context, userID int64, status string) ([]OrderDTO, error) {
	return s.listForUser(ctx, userID, enums.OrderTypeMaterial, status)
}

func (s *service) listForUser(ctx context.Context, userID int64, orderType enums.OrderType, status string) ([]OrderDTO, error) {
	var statusFilter *enums.OrderStatus
	if status != "" {
		parsed, err := enums.ParseOrderStatus(status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		statusFilter = &parsed
	}

	repo := NewRepository(s.db.DB())
	customer, err := repo.FindCustomerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve customer")
	}

	orders, err := repo.ListByCustomer(ctx, customer.ID, orderType, statusFilter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderDTO(&orders[i]))
	}
	return out, nil
}

func (s *service) loadOrder(ctx context.Context, id int64) (*models.Order, error) {
	repo := NewRepository(s.db.DB())
	order, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func wrapOrderErr(err error, message string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
