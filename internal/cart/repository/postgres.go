package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hardware-pos/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Upsert(ctx context.Context, item *model.CartItem, replace bool) error {
	quantity := "cart_items.quantity + EXCLUDED.quantity"
	if replace {
		quantity = "EXCLUDED.quantity"
	}
	query := fmt.Sprintf(`
        INSERT INTO cart_items (id, owner_id, variant_id, quantity, price, item_discount, is_percentage, gst, date_added)
        VALUES (:id, :owner_id, :variant_id, :quantity, :price, :item_discount, :is_percentage, :gst, :date_added)
        ON CONFLICT (owner_id, variant_id) DO UPDATE
        SET quantity = %s,
            price = EXCLUDED.price,
            item_discount = EXCLUDED.item_discount,
            is_percentage = EXCLUDED.is_percentage,
            gst = EXCLUDED.gst,
            date_added = EXCLUDED.date_added
        RETURNING id, quantity
    `, quantity)
	rows, err := r.DB.NamedQueryContext(ctx, query, item)
	if err != nil {
		return err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&item.ID, &item.Quantity); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *PGRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.DB.SelectContext(ctx, &items, `
        SELECT * FROM cart_items WHERE owner_id = $1 ORDER BY date_added ASC
    `, ownerID)
	return items, err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.CartItem, error) {
	var item model.CartItem
	err := r.DB.GetContext(ctx, &item, `SELECT * FROM cart_items WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) Update(ctx context.Context, item *model.CartItem) error {
	_, err := r.DB.NamedExecContext(ctx, `
        UPDATE cart_items
        SET quantity = :quantity, price = :price, item_discount = :item_discount, is_percentage = :is_percentage, gst = :gst
        WHERE id = :id
    `, item)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	return err
}

func (r *PGRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE owner_id = $1`, ownerID)
	return err
}
