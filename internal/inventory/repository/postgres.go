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

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/inventory/dto"
	"hardware-pos/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByVariantID(ctx context.Context, variantID string) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.DB.GetContext(ctx, &inv, `SELECT * FROM inventory WHERE variant_id = $1`, variantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.StockFilters) ([]dto.StockLevel, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Search != "" {
		conditions = append(conditions, "p.name ILIKE :search")
		args["search"] = "%" + f.Search + "%"
	}
	if f.MaxStock != nil {
		conditions = append(conditions, "COALESCE(i.quantity, 0) <= :max_stock")
		args["max_stock"] = *f.MaxStock
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	base := `
        FROM product_variants v
        JOIN products p ON p.id = v.product_id
        LEFT JOIN inventory i ON i.variant_id = v.id
    ` + whereClause

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) "+base, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := `
        SELECT v.id AS variant_id, p.id AS product_id, p.name AS product_name,
               v.size, v.price, COALESCE(i.quantity, 0) AS quantity,
               COALESCE(i.updated_at, v.updated_at) AS updated_at
    ` + base + " ORDER BY p.name ASC, v.size ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var items []dto.StockLevel
	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) AdjustWithMovement(ctx context.Context, adj *dto.Adjustment) (int, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var inv model.Inventory
	err = tx.GetContext(ctx, &inv, `SELECT * FROM inventory WHERE variant_id = $1 FOR UPDATE`, adj.VariantID)
	if errors.Is(err, sql.ErrNoRows) {
		inv = model.Inventory{ID: uuid.New().String(), VariantID: adj.VariantID, Quantity: 0, UpdatedAt: time.Now()}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO inventory (id, variant_id, quantity, updated_at)
            VALUES ($1, $2, $3, $4)
        `, inv.ID, inv.VariantID, inv.Quantity, inv.UpdatedAt)
	}
	if err != nil {
		return 0, err
	}

	before := inv.Quantity
	after := before + adj.Delta
	if after < 0 {
		// Manual corrections must not drive stock negative; only sales may.
		return 0, apperr.Validation("delta", "adjustment exceeds stock: have %d", before)
	}
	_, err = tx.ExecContext(ctx, `
        UPDATE inventory SET quantity = $1, updated_at = $2 WHERE variant_id = $3
    `, after, time.Now(), adj.VariantID)
	if err != nil {
		return 0, err
	}

	var refType, refID, createdBy *string
	if adj.ReferenceType != "" {
		refType = &adj.ReferenceType
	}
	if adj.ReferenceID != "" {
		refID = &adj.ReferenceID
	}
	if adj.CreatedBy != "" {
		createdBy = &adj.CreatedBy
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO inventory_movements
            (id, variant_id, movement_type, quantity_change, quantity_before, quantity_after, reference_type, reference_id, notes, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, uuid.New().String(), adj.VariantID, adj.MovementType, adj.Delta, before, after, refType, refID, adj.Notes, createdBy, time.Now())
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return after, nil
}

func (r *PGRepository) FindMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.VariantID != "" {
		conditions = append(conditions, "variant_id = :variant_id")
		args["variant_id"] = f.VariantID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM inventory_movements"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM inventory_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var items []model.InventoryMovement
	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
