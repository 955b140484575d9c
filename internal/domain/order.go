package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"

	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// OrderStatuses lists the accepted order states.
var OrderStatuses = []string{
	OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled,
}

// PaymentStatuses lists the accepted payment states.
var PaymentStatuses = []string{
	PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded,
}

// Order is a persisted checkout. Amount fields are computed from the cart at
// submission time and never recomputed: total_amount = subtotal + service_fee.
type Order struct {
	ID              int64           `json:"id,string" form:"id"`
	UserID          int64           `gorm:"index" json:"user_id,string" form:"user_id"` // 0 = guest
	CustomerName    string          `json:"customer_name" form:"customer_name"`
	CustomerPhone   string          `json:"customer_phone" form:"customer_phone"`
	CustomerEmail   string          `json:"customer_email" form:"customer_email"`
	EventDate       string          `json:"event_date" form:"event_date"`
	EventTime       string          `json:"event_time" form:"event_time"`
	EventLocation   string          `json:"event_location" form:"event_location"`
	GuestCount      int             `json:"guest_count" form:"guest_count"`
	SpecialRequests string          `json:"special_requests" form:"special_requests"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal"`
	ServiceFee      decimal.Decimal `gorm:"type:numeric(12,2)" json:"service_fee"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_amount"`
	Status          string          `gorm:"index;size:32" json:"status"`
	PaymentStatus   string          `gorm:"size:32" json:"payment_status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one cart line frozen at order creation, immutable thereafter.
type OrderItem struct {
	ID        int64           `json:"id,string"`
	OrderID   int64           `gorm:"index" json:"order_id,string"`
	FoodID    int64           `gorm:"index" json:"food_id,string"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "order_items"
}
