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
	"hardware-pos/internal/ledger"
	"hardware-pos/internal/model"
	"hardware-pos/internal/order"
	"hardware-pos/internal/order/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) PlaceOrder(ctx context.Context, ord *model.Order, params *dto.PlaceOrderParams) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO orders
            (id, customer_id, order_date, status, subtotal, total_item_discount, order_discount,
             is_percentage, total_discount, total_gst, total_amount, paid_amount, pay_type,
             is_paid, return_amount, note)
        VALUES
            (:id, :customer_id, :order_date, :status, :subtotal, :total_item_discount, :order_discount,
             :is_percentage, :total_discount, :total_gst, :total_amount, :paid_amount, :pay_type,
             :is_paid, :return_amount, :note)
    `, ord)
	if err != nil {
		return err
	}

	for i := range ord.Items {
		item := &ord.Items[i]
		_, err = tx.NamedExecContext(ctx, `
            INSERT INTO order_items
                (id, order_id, variant_id, quantity, price_at_sale, item_discount, is_percentage, gst, is_return)
            VALUES
                (:id, :order_id, :variant_id, :quantity, :price_at_sale, :item_discount, :is_percentage, :gst, :is_return)
        `, item)
		if err != nil {
			return err
		}

		if err := adjustStock(ctx, tx, &stockAdjustment{
			VariantID:     item.VariantID,
			Delta:         -item.Quantity,
			MovementType:  model.MovementSale,
			ReferenceID:   ord.ID,
			Notes:         "order placed",
			CreatedBy:     params.SoldBy,
			AllowNegative: params.AllowOversell,
		}); err != nil {
			return err
		}
	}

	if ord.CustomerID != nil {
		var cus model.Customer
		err = tx.GetContext(ctx, &cus, `SELECT * FROM customers WHERE id = $1 FOR UPDATE`, *ord.CustomerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("customer")
			}
			return err
		}

		alloc := ledger.Allocate(cus.PendingAmount, cus.AdvancePayment, ord.TotalAmount, ord.PaidAmount)
		ord.IsPaid = alloc.IsPaid

		_, err = tx.ExecContext(ctx, `
            UPDATE customers SET pending_amount = $1, advance_payment = $2, updated_at = $3 WHERE id = $4
        `, alloc.PendingAmount, alloc.AdvancePayment, time.Now(), cus.ID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `UPDATE orders SET is_paid = $1 WHERE id = $2`, ord.IsPaid, ord.ID)
		if err != nil {
			return err
		}
	}

	if params.OwnerID != "" {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE owner_id = $1`, params.OwnerID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var ord model.Order
	err := r.DB.GetContext(ctx, &ord, `SELECT * FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.DB.SelectContext(ctx, &ord.Items, `
        SELECT * FROM order_items WHERE order_id = $1 ORDER BY id ASC
    `, id); err != nil {
		return nil, err
	}

	if len(ord.Items) > 0 {
		variantIDs := make([]string, 0, len(ord.Items))
		for _, it := range ord.Items {
			variantIDs = append(variantIDs, it.VariantID)
		}
		query, args, err := sqlx.In(`SELECT * FROM product_variants WHERE id IN (?)`, variantIDs)
		if err != nil {
			return nil, err
		}
		var variants []model.ProductVariant
		if err := r.DB.SelectContext(ctx, &variants, r.DB.Rebind(query), args...); err != nil {
			return nil, err
		}
		byID := map[string]*model.ProductVariant{}
		for i := range variants {
			byID[variants[i].ID] = &variants[i]
		}
		for i := range ord.Items {
			ord.Items[i].Variant = byID[ord.Items[i].VariantID]
		}
	}

	if ord.CustomerID != nil {
		var cus model.Customer
		err := r.DB.GetContext(ctx, &cus, `SELECT * FROM customers WHERE id = $1`, *ord.CustomerID)
		if err == nil {
			ord.Customer = &cus
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	return &ord, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.CustomerID != "" {
		conditions = append(conditions, "customer_id = :customer_id")
		args["customer_id"] = f.CustomerID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.DateFrom != nil {
		conditions = append(conditions, "order_date >= :date_from")
		args["date_from"] = *f.DateFrom
	}
	if f.DateTo != nil {
		conditions = append(conditions, "order_date <= :date_to")
		args["date_to"] = *f.DateTo
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM orders"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY order_date DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var items []model.Order
	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) UpdateStatus(ctx context.Context, id, from, to string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var ord model.Order
	err = tx.GetContext(ctx, &ord, `SELECT * FROM orders WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("order")
		}
		return err
	}
	if ord.Status != from {
		return apperr.Validation("status", "order status changed concurrently")
	}
	if !model.CanTransitionOrderStatus(from, to) {
		return apperr.Validation("status", "cannot change status from %s to %s", from, to)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, to, id); err != nil {
		return err
	}

	// Cancellation releases the units still with the customer; units already
	// restocked by approved returns stay put. Reopening takes them again.
	var delta int
	var notes string
	switch {
	case to == model.OrderStatusCancelled && from != model.OrderStatusCancelled:
		delta, notes = 1, "order cancelled"
	case from == model.OrderStatusCancelled && to != model.OrderStatusCancelled:
		delta, notes = -1, "order reopened"
	default:
		return tx.Commit()
	}

	var items []model.OrderItem
	if err := tx.SelectContext(ctx, &items, `SELECT * FROM order_items WHERE order_id = $1`, id); err != nil {
		return err
	}
	returned, err := returnedQuantities(ctx, tx, id)
	if err != nil {
		return err
	}
	for _, it := range items {
		outstanding := order.OutstandingQuantity(it.Quantity, returned[it.ID])
		if outstanding == 0 {
			continue
		}
		if err := adjustStock(ctx, tx, &stockAdjustment{
			VariantID:     it.VariantID,
			Delta:         delta * outstanding,
			MovementType:  model.MovementAdjustment,
			ReferenceID:   id,
			Notes:         notes,
			AllowNegative: true,
		}); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// returnedQuantities sums the units taken back per order item across the
// order's approved and completed returns.
func returnedQuantities(ctx context.Context, tx *sqlx.Tx, orderID string) (map[string]int, error) {
	rows, err := tx.QueryContext(ctx, `
        SELECT ri.order_item_id, COALESCE(SUM(ri.return_quantity), 0)
        FROM return_items ri
        JOIN order_returns orr ON orr.id = ri.return_id
        WHERE orr.order_id = $1 AND orr.status IN ($2, $3)
        GROUP BY ri.order_item_id
    `, orderID, model.ReturnStatusApproved, model.ReturnStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]int{}
	for rows.Next() {
		var itemID string
		var qty int
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, err
		}
		result[itemID] = qty
	}
	return result, rows.Err()
}

type stockAdjustment struct {
	VariantID     string
	Delta         int
	MovementType  string
	ReferenceID   string
	Notes         string
	CreatedBy     string
	AllowNegative bool
}

// adjustStock locks the variant's inventory row (creating it at zero when
// missing), applies the delta and records the movement.
func adjustStock(ctx context.Context, tx *sqlx.Tx, adj *stockAdjustment) error {
	var inv model.Inventory
	err := tx.GetContext(ctx, &inv, `SELECT * FROM inventory WHERE variant_id = $1 FOR UPDATE`, adj.VariantID)
	if errors.Is(err, sql.ErrNoRows) {
		inv = model.Inventory{ID: uuid.New().String(), VariantID: adj.VariantID, Quantity: 0, UpdatedAt: time.Now()}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO inventory (id, variant_id, quantity, updated_at)
            VALUES ($1, $2, $3, $4)
        `, inv.ID, inv.VariantID, inv.Quantity, inv.UpdatedAt)
	}
	if err != nil {
		return err
	}

	before := inv.Quantity
	after := before + adj.Delta
	if !order.CanDebit(before, -adj.Delta, adj.AllowNegative) {
		return apperr.Validation("quantity", "insufficient stock for variant %s: have %d, need %d", adj.VariantID, before, -adj.Delta)
	}

	_, err = tx.ExecContext(ctx, `
        UPDATE inventory SET quantity = $1, updated_at = $2 WHERE variant_id = $3
    `, after, time.Now(), adj.VariantID)
	if err != nil {
		return err
	}

	var refID, createdBy *string
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
    `, uuid.New().String(), adj.VariantID, adj.MovementType, adj.Delta, before, after, adj.MovementType, refID, adj.Notes, createdBy, time.Now())
	return err
}
