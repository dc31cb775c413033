package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"hardware-pos/internal/customer/dto"
	"hardware-pos/internal/ledger"
	"hardware-pos/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, cus *model.Customer) error {
	query := `
        INSERT INTO customers (id, name, phone, email, address, pending_amount, advance_payment, created_at, updated_at)
        VALUES (:id, :name, :phone, :email, :address, :pending_amount, :advance_payment, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, cus)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	var cus model.Customer
	err := r.DB.GetContext(ctx, &cus, `SELECT * FROM customers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cus, nil
}

func (r *PGRepository) FindByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	var cus model.Customer
	err := r.DB.GetContext(ctx, &cus, `SELECT * FROM customers WHERE phone = $1`, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cus, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CustomerFilters) ([]model.Customer, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Search != "" {
		conditions = append(conditions, "(name ILIKE :search OR phone ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM customers"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM customers" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var items []model.Customer
	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) Update(ctx context.Context, cus *model.Customer) error {
	query := `
        UPDATE customers
        SET name = :name, phone = :phone, email = :email, address = :address,
            pending_amount = :pending_amount, advance_payment = :advance_payment,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := r.DB.NamedExecContext(ctx, query, cus)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("customer %s not updated", cus.ID)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return err
}

func (r *PGRepository) ApplyPayment(ctx context.Context, id string, amount decimal.Decimal) (*model.Customer, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var cus model.Customer
	err = tx.GetContext(ctx, &cus, `SELECT * FROM customers WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	alloc := ledger.ApplyPayment(cus.PendingAmount, cus.AdvancePayment, amount)
	cus.PendingAmount = alloc.PendingAmount
	cus.AdvancePayment = alloc.AdvancePayment
	cus.UpdatedAt = time.Now()

	_, err = tx.ExecContext(ctx, `
        UPDATE customers
        SET pending_amount = $1, advance_payment = $2, updated_at = $3
        WHERE id = $4
    `, cus.PendingAmount, cus.AdvancePayment, cus.UpdatedAt, cus.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &cus, nil
}
