package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	shoperrors "github.com/abgdnv/musicshop/internal/errors"
	"github.com/abgdnv/musicshop/internal/shop"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	insertSale = `INSERT INTO sales (id, customer_id, customer_name, total, created_at)
VALUES ($1, $2, $3, $4, $5)`

	insertSaleItem = `INSERT INTO sale_items (sale_id, position, product_id, kind, name, artist, genre, price, image_ref, track_count, duration)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	selectSale = `SELECT id, customer_id, customer_name, total::text, created_at FROM sales WHERE id = $1`

	selectSaleItems = `SELECT product_id, kind, name, artist, genre, price::text, image_ref, track_count, duration
FROM sale_items WHERE sale_id = $1 ORDER BY position`

	selectCustomerSales = `SELECT id, customer_id, customer_name, total::text, created_at FROM sales
WHERE customer_id = $1 ORDER BY created_at, id OFFSET $2 LIMIT $3`
)

// PgStore implements SaleStore on PostgreSQL.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of SaleStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// saleRow is a sales table row before its items are attached.
type saleRow struct {
	id           uuid.UUID
	customerID   uuid.UUID
	customerName string
	total        string
	createdAt    time.Time
}

func (p *PgStore) Save(ctx context.Context, sale shop.Sale) error {
	id, customerID, err := saleKeys(sale)
	if err != nil {
		return err
	}

	return p.withTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertSale, id, customerID, sale.Customer().Name, sale.Total().String(), sale.Timestamp())
		if err != nil {
			return fmt.Errorf("%w: %v", shoperrors.ErrSaveSale, err)
		}
		for i, item := range sale.Items() {
			_, err := tx.Exec(ctx, insertSaleItem, id, i, item.ID, string(item.Kind), item.Name, item.Artist,
				string(item.Genre), item.Price.String(), item.ImageRef, item.TrackCount, item.Duration)
			if err != nil {
				return fmt.Errorf("%w: %v", shoperrors.ErrSaveSaleItem, err)
			}
		}
		return nil
	})
}

func (p *PgStore) FindByID(ctx context.Context, id uuid.UUID) (shop.Sale, error) {
	var sale shop.Sale

	// Use transaction to read the sale and its items from one snapshot
	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		var row saleRow
		err := tx.QueryRow(ctx, selectSale, id).Scan(&row.id, &row.customerID, &row.customerName, &row.total, &row.createdAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shoperrors.ErrSaleNotFound
			}
			return shoperrors.ErrFailedToFindSale
		}
		sale, err = loadSale(ctx, tx, row)
		return err
	})
	if txErr != nil {
		return shop.Sale{}, txErr
	}

	return sale, nil
}

func (p *PgStore) FindByCustomer(ctx context.Context, customerID uuid.UUID, offset, limit int32) ([]shop.Sale, error) {
	var list []shop.Sale

	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectCustomerSales, customerID, max(offset, 0), limitOrAll(limit))
		if err != nil {
			return shoperrors.ErrFailedToFindCustomerSales
		}
		saleRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (saleRow, error) {
			var r saleRow
			err := row.Scan(&r.id, &r.customerID, &r.customerName, &r.total, &r.createdAt)
			return r, err
		})
		if err != nil {
			return shoperrors.ErrFailedToFindCustomerSales
		}

		list = make([]shop.Sale, 0, len(saleRows))
		for _, row := range saleRows {
			sale, err := loadSale(ctx, tx, row)
			if err != nil {
				return err
			}
			list = append(list, sale)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return list, nil
}

// loadSale reads the items of row and rebuilds the sale.
func loadSale(ctx context.Context, tx pgx.Tx, row saleRow) (shop.Sale, error) {
	rows, err := tx.Query(ctx, selectSaleItems, row.id)
	if err != nil {
		return shop.Sale{}, shoperrors.ErrFailedToFindSaleItems
	}
	items, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (shop.Product, error) {
		var (
			p           shop.Product
			kind, genre string
			price       string
		)
		if err := r.Scan(&p.ID, &kind, &p.Name, &p.Artist, &genre, &price, &p.ImageRef, &p.TrackCount, &p.Duration); err != nil {
			return shop.Product{}, err
		}
		p.Kind = shop.Kind(kind)
		p.Genre = shop.Genre(genre)
		amount, parseErr := decimal.NewFromString(price)
		if parseErr != nil {
			return shop.Product{}, parseErr
		}
		p.Price = amount
		return p, nil
	})
	if err != nil {
		return shop.Sale{}, shoperrors.ErrFailedToFindSaleItems
	}

	total, err := decimal.NewFromString(row.total)
	if err != nil {
		return shop.Sale{}, shoperrors.ErrFailedToFindSale
	}
	customer := shop.CustomerRef{ID: row.customerID.String(), Name: row.customerName}
	return shop.NewSale(row.id.String(), customer, items, total, row.createdAt), nil
}

// limitOrAll maps a non-positive limit to NULL, which PostgreSQL reads as LIMIT ALL.
func limitOrAll(limit int32) *int32 {
	if limit <= 0 {
		return nil
	}
	return &limit
}

func (p *PgStore) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return shoperrors.ErrTransactionBegin
	}

	err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return shoperrors.ErrTransactionRollback
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return shoperrors.ErrTransactionCommit
	}

	return nil
}
