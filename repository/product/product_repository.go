package product

import (
	"context"
	"database/sql"

	"github.com/asetku/marketplace/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	List(ctx context.Context, page, perPage int) ([]model.AssetListItem, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.AssetDetail, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductRow, error)
	DecrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, quantity int) error
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	listAssetsQuery = `SELECT p.id, p.name, p.file_format, p.price, p.stock, u.name AS artist_name
FROM product p
JOIN user u ON p.artist_id = u.id
ORDER BY p.id LIMIT ? OFFSET ?`

	countAssetsQuery = `SELECT COUNT(*) FROM product`

	getAssetDetailQuery = `SELECT p.id, p.name, p.description, p.file_format, p.preview_url, p.price, p.stock, u.id AS artist_id, u.name AS artist_name
FROM product p
JOIN user u ON p.artist_id = u.id
WHERE p.id = ?`
)

func (s *SQL) List(ctx context.Context, page, perPage int) ([]model.AssetListItem, int64, error) {
	offset := (page - 1) * perPage

	rows, err := s.conn.QueryxContext(ctx, listAssetsQuery, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.AssetListItem, 0)
	for rows.Next() {
		var it model.AssetListItem
		if err := rows.StructScan(&it); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}

	// get total count
	var total int64
	if err := s.conn.GetContext(ctx, &total, countAssetsQuery); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.AssetDetail, error) {
	var detail model.AssetDetail
	if err := s.conn.QueryRowxContext(ctx, getAssetDetailQuery, id).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

// GetForUpdateTx reads the product row inside the checkout transaction and
// locks it, so the price snapshot cannot move under the order being written.
func (s *SQL) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.ProductRow, error) {
	var row model.ProductRow
	if err := tx.QueryRowxContext(ctx, "SELECT id, price, stock FROM product WHERE id = ? FOR UPDATE", id).StructScan(&row); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// DecrementStockTx lowers the stock counter, clamped at zero. Reconciliation
// owns the at-most-once guarantee; this is a plain decrement.
func (s *SQL) DecrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, quantity int) error {
	_, err := tx.ExecContext(ctx, "UPDATE product SET stock = GREATEST(stock - ?, 0) WHERE id = ?", quantity, productID)
	return err
}
