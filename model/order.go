package model

import (
	"database/sql"
	"time"

	"github.com/asetku/marketplace/constant"
)

// CheckoutRequest is the purchase entry payload. ClientTS is the
// client-submitted idempotency timestamp used to derive the checkout lock key.
type CheckoutRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	ClientTS  int64  `json:"client_ts" validate:"required"`
}

type CheckoutResponse struct {
	OrderID         uint64 `json:"order_id"`
	BusinessOrderID string `json:"business_order_id"`
	SnapToken       string `json:"snap_token"`
}

type InsertOrderTxItem struct {
	UserID          uint64
	BusinessOrderID string
	TotalAmount     float64
	Status          constant.OrderStatus
}

type InsertOrderLineTxItem struct {
	ProductID uint64
	Quantity  int
	UnitPrice float64
	Subtotal  float64
}

type OrderDetail struct {
	ID              uint64               `db:"id"`
	BusinessOrderID string               `db:"business_order_id"`
	UserID          uint64               `db:"user_id"`
	TotalAmount     float64              `db:"total_amount"`
	Status          constant.OrderStatus `db:"status"`
	SnapToken       sql.NullString       `db:"snap_token"`
	PaymentTime     *time.Time           `db:"payment_time"`
	CreatedAt       time.Time            `db:"created_at"`
}

type OrderLine struct {
	ID        uint64  `db:"id"`
	OrderID   uint64  `db:"order_id"`
	ProductID uint64  `db:"product_id"`
	Quantity  int     `db:"quantity"`
	UnitPrice float64 `db:"unit_price"`
	Subtotal  float64 `db:"subtotal"`
}

// PaymentNotification is the gateway webhook payload.
type PaymentNotification struct {
	OrderID           string `json:"order_id" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
}

type SweepResult struct {
	Checked   int `json:"checked"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}
