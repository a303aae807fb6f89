package order

import (
	"context"
	"database/sql"
	"time"

	"github.com/asetku/marketplace/constant"
	"github.com/asetku/marketplace/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error)
	InsertOrderLineTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, line *model.InsertOrderLineTxItem) error
	SetSnapTokenTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, token string) error
	GetByBusinessIDTx(ctx context.Context, tx *sqlx.Tx, businessOrderID string) (*model.OrderDetail, error)
	GetByBusinessID(ctx context.Context, businessOrderID string) (*model.OrderDetail, error)
	MarkStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus, paymentTime *time.Time) (bool, error)
	GetOrderLinesTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderLine, error)
	ListStalePending(ctx context.Context, olderThan time.Duration) ([]string, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const getOrderQuery = `SELECT id, business_order_id, user_id, total_amount, status, snap_token, payment_time, created_at FROM ` + "`order`" + ` WHERE business_order_id = ?`

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO `order` (business_order_id, user_id, total_amount, status, created_at) VALUES (?, ?, ?, ?, NOW())",
		req.BusinessOrderID, req.UserID, req.TotalAmount, req.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertOrderLineTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, line *model.InsertOrderLineTxItem) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO order_line (order_id, product_id, quantity, unit_price, subtotal) VALUES (?, ?, ?, ?, ?)",
		orderID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal)
	return err
}

// SetSnapTokenTx writes the gateway session token. The status guard keeps the
// token write-once: it only lands while the order is still pending and unset.
func (r *SQL) SetSnapTokenTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, token string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE `order` SET snap_token = ?, updated_at = NOW() WHERE id = ? AND status = ? AND snap_token IS NULL",
		token, orderID, constant.OrderStatusPending)
	return err
}

func (r *SQL) GetByBusinessIDTx(ctx context.Context, tx *sqlx.Tx, businessOrderID string) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	if err := tx.QueryRowxContext(ctx, getOrderQuery, businessOrderID).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (r *SQL) GetByBusinessID(ctx context.Context, businessOrderID string) (*model.OrderDetail, error) {
	var detail model.OrderDetail
	if err := r.conn.QueryRowxContext(ctx, getOrderQuery, businessOrderID).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

// MarkStatusTx transitions a pending order to a terminal status. The returned
// bool reports whether this call performed the transition: a repeated call for
// an already-terminal order affects zero rows and is a no-op, which is what
// keeps reconciliation idempotent.
func (r *SQL) MarkStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus, paymentTime *time.Time) (bool, error) {
	res, err := tx.ExecContext(ctx,
		"UPDATE `order` SET status = ?, payment_time = ?, updated_at = NOW() WHERE id = ? AND status = ?",
		status, paymentTime, orderID, constant.OrderStatusPending)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *SQL) GetOrderLinesTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderLine, error) {
	rows, err := tx.QueryxContext(ctx,
		"SELECT id, order_id, product_id, quantity, unit_price, subtotal FROM order_line WHERE order_id = ?", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]model.OrderLine, 0)
	for rows.Next() {
		var line model.OrderLine
		if err := rows.StructScan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *SQL) ListStalePending(ctx context.Context, olderThan time.Duration) ([]string, error) {
	rows, err := r.conn.QueryxContext(ctx,
		"SELECT business_order_id FROM `order` WHERE status = ? AND created_at < ?",
		constant.OrderStatusPending, time.Now().UTC().Add(-olderThan))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
