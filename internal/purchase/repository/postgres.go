package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hardware-pos/internal/model"
	"hardware-pos/internal/purchase/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateWithStock(ctx context.Context, pur *model.Purchase) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO purchases (id, supplier_id, variant_id, quantity, purchase_price, discount, gst, total_price, date)
        VALUES (:id, :supplier_id, :variant_id, :quantity, :purchase_price, :discount, :gst, :total_price, :date)
    `, pur)
	if err != nil {
		return err
	}

	if err := adjustStock(ctx, tx, pur.VariantID, pur.Quantity, model.MovementPurchase, pur.ID, "stock intake"); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Purchase, error) {
	var pur model.Purchase
	err := r.DB.GetContext(ctx, &pur, `SELECT * FROM purchases WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &pur, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.PurchaseFilters) ([]model.Purchase, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.SupplierID != "" {
		conditions = append(conditions, "supplier_id = :supplier_id")
		args["supplier_id"] = f.SupplierID
	}
	if f.VariantID != "" {
		conditions = append(conditions, "variant_id = :variant_id")
		args["variant_id"] = f.VariantID
	}
	if f.DateFrom != nil {
		conditions = append(conditions, "date >= :date_from")
		args["date_from"] = *f.DateFrom
	}
	if f.DateTo != nil {
		conditions = append(conditions, "date <= :date_to")
		args["date_to"] = *f.DateTo
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM purchases"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM purchases" + whereClause + " ORDER BY date DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var items []model.Purchase
	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) DeleteWithStock(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var pur model.Purchase
	err = tx.GetContext(ctx, &pur, `SELECT * FROM purchases WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM purchases WHERE id = $1`, id); err != nil {
		return err
	}

	if err := adjustStock(ctx, tx, pur.VariantID, -pur.Quantity, model.MovementAdjustment, pur.ID, "purchase removed"); err != nil {
		return err
	}

	return tx.Commit()
}

// adjustStock locks the variant's inventory row (creating it at zero when
// missing), applies the delta and records the movement.
func adjustStock(ctx context.Context, tx *sqlx.Tx, variantID string, delta int, movementType, refID, notes string) error {
	var inv model.Inventory
	err := tx.GetContext(ctx, &inv, `SELECT * FROM inventory WHERE variant_id = $1 FOR UPDATE`, variantID)
	if errors.Is(err, sql.ErrNoRows) {
		inv = model.Inventory{ID: uuid.New().String(), VariantID: variantID, Quantity: 0, UpdatedAt: time.Now()}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO inventory (id, variant_id, quantity, updated_at)
            VALUES ($1, $2, $3, $4)
        `, inv.ID, inv.VariantID, inv.Quantity, inv.UpdatedAt)
	}
	if err != nil {
		return err
	}

	before := inv.Quantity
	after := before + delta
	_, err = tx.ExecContext(ctx, `
        UPDATE inventory SET quantity = $1, updated_at = $2 WHERE variant_id = $3
    `, after, time.Now(), variantID)
	if err != nil {
		return err
	}

	refType := movementType
	_, err = tx.ExecContext(ctx, `
        INSERT INTO inventory_movements
            (id, variant_id, movement_type, quantity_change, quantity_before, quantity_after, reference_type, reference_id, notes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, uuid.New().String(), variantID, movementType, delta, before, after, refType, refID, notes, time.Now())
	return err
}
