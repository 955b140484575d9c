// Package ordering implements the checkout workflow: it turns a populated
// cart plus customer and event details into a persisted order with its line
// items, all inside one database transaction.
package ordering

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/remiedy/catering/internal/cart"
	"github.com/remiedy/catering/internal/domain"
	"github.com/remiedy/catering/pkg/common"
	"github.com/remiedy/catering/pkg/money"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNotFound  = errors.New("order not found")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CheckoutForm carries the customer and event details submitted at checkout.
// Free text is sanitized, not format-validated.
type CheckoutForm struct {
	UserID          int64  `json:"user_id,string" form:"user_id"`
	CustomerName    string `json:"customer_name" form:"customer_name"`
	CustomerPhone   string `json:"customer_phone" form:"customer_phone"`
	CustomerEmail   string `json:"customer_email" form:"customer_email"`
	EventDate       string `json:"event_date" form:"event_date"`
	EventTime       string `json:"event_time" form:"event_time"`
	EventLocation   string `json:"event_location" form:"event_location"`
	GuestCount      string `json:"guest_count" form:"guest_count"`
	SpecialRequests string `json:"special_requests" form:"special_requests"`
}

// SubmitOrder persists one Order plus one OrderItem per cart line. The write
// is all-or-nothing: a failure on any row rolls back the whole order, so an
// Order row without its items can never persist. On success the cart is
// cleared and the new order id returned.
func (s *Service) SubmitOrder(ctx context.Context, form CheckoutForm, crt *cart.Cart) (int64, error) {
	if crt == nil || crt.Empty() {
		return 0, ErrEmptyCart
	}

	lines := crt.Lines()
	subtotal := crt.Subtotal()
	fee := money.ServiceFee(subtotal)
	total := money.Total(subtotal, fee)

	now := time.Now()
	eventTime := form.EventTime
	if eventTime == "" {
		eventTime = now.Format("15:04:05")
	}

	order := domain.Order{
		ID:              common.UUIDint64(),
		UserID:          form.UserID,
		CustomerName:    common.CleanText(form.CustomerName),
		CustomerPhone:   common.CleanText(form.CustomerPhone),
		CustomerEmail:   common.CleanText(form.CustomerEmail),
		EventDate:       form.EventDate,
		EventTime:       eventTime,
		EventLocation:   common.CleanText(form.EventLocation),
		GuestCount:      cast.ToInt(form.GuestCount),
		SpecialRequests: common.CleanText(form.SpecialRequests),
		Subtotal:        subtotal,
		ServiceFee:      fee,
		TotalAmount:     total,
		Status:          domain.OrderStatusPending,
		PaymentStatus:   domain.PaymentStatusUnpaid,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, line := range lines {
			item := domain.OrderItem{
				ID:        common.UUIDint64(),
				OrderID:   order.ID,
				FoodID:    line.FoodID,
				Name:      line.Name,
				Quantity:  line.Quantity,
				Price:     line.Price,
				Subtotal:  line.Subtotal(),
				CreatedAt: now,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		zap.L().Error("order submission failed",
			zap.String("customer", order.CustomerName),
			zap.Error(err))
		return 0, err
	}

	crt.Clear()
	zap.L().Info("order submitted",
		zap.Int64("order_id", order.ID),
		zap.String("total", order.TotalAmount.StringFixed(money.Precision)))
	return order.ID, nil
}

// GetOrder loads a single order by id.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderItems loads the line items of an order.
func (s *Service) GetOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("food_id").
		Find(&items).Error
	return items, err
}

// OrderRow is an order joined with the registered customer's name when one
// exists; guest orders fall back to the name captured at checkout.
type OrderRow struct {
	domain.Order
	CustomerAccount string `json:"customer_account"`
}

// ListOrders returns orders newest first, joined with the customer name.
func (s *Service) ListOrders(ctx context.Context, page, pageSize int) ([]OrderRow, int64, error) {
	base := s.db.WithContext(ctx).Model(&domain.Order{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []OrderRow
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("orders.*, COALESCE(sys_user.username, '') AS customer_account").
		Joins("LEFT JOIN sys_user ON sys_user.id = orders.user_id").
		Order("orders.created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateStatus sets the order status and/or payment status. Empty values
// leave the corresponding field untouched.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status, paymentStatus string) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if status != "" {
		updates["status"] = status
	}
	if paymentStatus != "" {
		updates["payment_status"] = paymentStatus
	}
	res := s.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type orderCSVRow struct {
	ID            int64  `csv:"order_id"`
	CustomerName  string `csv:"customer"`
	CustomerPhone string `csv:"phone"`
	EventDate     string `csv:"event_date"`
	EventLocation string `csv:"event_location"`
	GuestCount    int    `csv:"guests"`
	Subtotal      string `csv:"subtotal"`
	ServiceFee    string `csv:"service_fee"`
	TotalAmount   string `csv:"total"`
	Status        string `csv:"status"`
	PaymentStatus string `csv:"payment_status"`
	CreatedAt     string `csv:"created_at"`
}

// ExportOrdersCSV writes all orders, newest first, as CSV.
func (s *Service) ExportOrdersCSV(ctx context.Context, w io.Writer) error {
	var orders []domain.Order
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return err
	}
	rows := make([]orderCSVRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderCSVRow{
			ID:            o.ID,
			CustomerName:  o.CustomerName,
			CustomerPhone: o.CustomerPhone,
			EventDate:     o.EventDate,
			EventLocation: o.EventLocation,
			GuestCount:    o.GuestCount,
			Subtotal:      o.Subtotal.StringFixed(money.Precision),
			ServiceFee:    o.ServiceFee.StringFixed(money.Precision),
			TotalAmount:   o.TotalAmount.StringFixed(money.Precision),
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		})
	}
	return gocsv.Marshal(&rows, w)
}
