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
	"github.com/shopspring/decimal"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/model"
	"hardware-pos/internal/order"
	"hardware-pos/internal/returns"
	"hardware-pos/internal/returns/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, ret *model.OrderReturn) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO order_returns
            (id, order_id, return_date, status, reason, notes, processing_fee,
             total_return_amount, refund_amount, processed_by, processed_at)
        VALUES
            (:id, :order_id, :return_date, :status, :reason, :notes, :processing_fee,
             :total_return_amount, :refund_amount, :processed_by, :processed_at)
    `, ret)
	if err != nil {
		return err
	}

	for i := range ret.Items {
		_, err = tx.NamedExecContext(ctx, `
            INSERT INTO return_items
                (id, return_id, order_item_id, return_quantity, condition, refund_per_unit, total_refund)
            VALUES
                (:id, :return_id, :order_item_id, :return_quantity, :condition, :refund_per_unit, :total_refund)
        `, &ret.Items[i])
		if err != nil {
			return err
		}

		// Provisional marker while the request is pending; approval and
		// rejection resync it from approved/completed returns.
		_, err = tx.ExecContext(ctx, `UPDATE order_items SET is_return = TRUE WHERE id = $1`, ret.Items[i].OrderItemID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.OrderReturn, error) {
	var ret model.OrderReturn
	err := r.DB.GetContext(ctx, &ret, `SELECT * FROM order_returns WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.DB.SelectContext(ctx, &ret.Items, `
        SELECT * FROM return_items WHERE return_id = $1 ORDER BY id ASC
    `, id); err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ReturnFilters) ([]model.OrderReturn, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.OrderID != "" {
		conditions = append(conditions, "order_id = :order_id")
		args["order_id"] = f.OrderID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.Reason != "" {
		conditions = append(conditions, "reason = :reason")
		args["reason"] = f.Reason
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM order_returns"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM order_returns" + whereClause + " ORDER BY return_date DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var items []model.OrderReturn
	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) ReturnedQuantities(ctx context.Context, orderID string) (map[string]int, error) {
	rows, err := r.DB.QueryxContext(ctx, `
        SELECT ri.order_item_id, COALESCE(SUM(ri.return_quantity), 0)
        FROM return_items ri
        JOIN order_returns orr ON orr.id = ri.return_id
        WHERE orr.order_id = $1 AND orr.status <> $2
        GROUP BY ri.order_item_id
    `, orderID, model.ReturnStatusRejected)
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

func (r *PGRepository) Approve(ctx context.Context, id, processedBy string) (*model.OrderReturn, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ret, err := lockReturn(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !ret.CanApprove() {
		return nil, apperr.Validation("status", "return is %s, only pending returns can be approved", ret.Status)
	}

	var ord model.Order
	err = tx.GetContext(ctx, &ord, `SELECT * FROM orders WHERE id = $1 FOR UPDATE`, ret.OrderID)
	if err != nil {
		return nil, err
	}

	// Cross-check the stored return total against its items before touching
	// stock or money.
	itemSum := decimal.Zero
	for _, ri := range ret.Items {
		itemSum = itemSum.Add(ri.TotalRefund)
	}
	if !order.WithinTolerance(itemSum, ret.TotalReturnAmount) {
		return nil, apperr.Validation("total_return_amount", "return total %s does not match item refunds %s",
			ret.TotalReturnAmount.String(), itemSum.String())
	}

	now := time.Now()
	ret.Status = model.ReturnStatusApproved
	ret.ProcessedBy = &processedBy
	ret.ProcessedAt = &now
	_, err = tx.ExecContext(ctx, `
        UPDATE order_returns SET status = $1, processed_by = $2, processed_at = $3 WHERE id = $4
    `, ret.Status, ret.ProcessedBy, ret.ProcessedAt, ret.ID)
	if err != nil {
		return nil, err
	}

	for _, ri := range ret.Items {
		var item model.OrderItem
		err = tx.GetContext(ctx, &item, `SELECT * FROM order_items WHERE id = $1 FOR UPDATE`, ri.OrderItemID)
		if err != nil {
			return nil, err
		}

		if restock := returns.RestockQuantity(ri.Condition, ri.ReturnQuantity); restock > 0 {
			if err := restockVariant(ctx, tx, item.VariantID, restock, ret.ID, processedBy); err != nil {
				return nil, err
			}
		}

		if err := syncReturnFlag(ctx, tx, ri.OrderItemID); err != nil {
			return nil, err
		}
	}

	newReturnAmount := ord.ReturnAmount.Add(ret.RefundAmount)
	if _, err := tx.ExecContext(ctx, `UPDATE orders SET return_amount = $1 WHERE id = $2`, newReturnAmount, ord.ID); err != nil {
		return nil, err
	}

	if ord.CustomerID != nil {
		var cus model.Customer
		err = tx.GetContext(ctx, &cus, `SELECT * FROM customers WHERE id = $1 FOR UPDATE`, *ord.CustomerID)
		if err != nil {
			return nil, err
		}
		// Refunds are held as store credit rather than cash out.
		_, err = tx.ExecContext(ctx, `
            UPDATE customers SET advance_payment = $1, updated_at = $2 WHERE id = $3
        `, cus.AdvancePayment.Add(ret.RefundAmount), time.Now(), cus.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (r *PGRepository) Reject(ctx context.Context, id, processedBy string) (*model.OrderReturn, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ret, err := lockReturn(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !ret.CanReject() {
		return nil, apperr.Validation("status", "return is %s, only pending returns can be rejected", ret.Status)
	}

	now := time.Now()
	ret.Status = model.ReturnStatusRejected
	ret.ProcessedBy = &processedBy
	ret.ProcessedAt = &now
	_, err = tx.ExecContext(ctx, `
        UPDATE order_returns SET status = $1, processed_by = $2, processed_at = $3 WHERE id = $4
    `, ret.Status, ret.ProcessedBy, ret.ProcessedAt, ret.ID)
	if err != nil {
		return nil, err
	}

	// Clear the provisional marker unless another processed return still
	// covers the item.
	for _, ri := range ret.Items {
		if err := syncReturnFlag(ctx, tx, ri.OrderItemID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (r *PGRepository) Complete(ctx context.Context, id string) (*model.OrderReturn, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ret, err := lockReturn(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !ret.CanComplete() {
		return nil, apperr.Validation("status", "return is %s, only approved returns can be completed", ret.Status)
	}

	ret.Status = model.ReturnStatusCompleted
	if _, err := tx.ExecContext(ctx, `UPDATE order_returns SET status = $1 WHERE id = $2`, ret.Status, ret.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (r *PGRepository) Statistics(ctx context.Context) (*dto.ReturnStatistics, error) {
	var byStatus []dto.StatusCount
	err := r.DB.SelectContext(ctx, &byStatus, `
        SELECT status, count(*) AS count, COALESCE(SUM(refund_amount), 0) AS refund
        FROM order_returns
        GROUP BY status
        ORDER BY status
    `)
	if err != nil {
		return nil, err
	}

	var byReason []dto.ReasonCount
	err = r.DB.SelectContext(ctx, &byReason, `
        SELECT reason, count(*) AS count
        FROM order_returns
        GROUP BY reason
        ORDER BY count DESC, reason
    `)
	if err != nil {
		return nil, err
	}

	stats := &dto.ReturnStatistics{
		TotalRefunded: decimal.Zero,
		ByStatus:      byStatus,
		ByReason:      byReason,
	}
	for _, sc := range byStatus {
		stats.TotalReturns += sc.Count
		if sc.Status == model.ReturnStatusApproved || sc.Status == model.ReturnStatusCompleted {
			stats.TotalRefunded = stats.TotalRefunded.Add(sc.Refund)
		}
		if sc.Status == model.ReturnStatusPending {
			stats.PendingReviews = sc.Count
		}
	}
	return stats, nil
}

// syncReturnFlag recomputes order_items.is_return from the current state of
// the requests claiming the item. Safe to call any number of times.
func syncReturnFlag(ctx context.Context, tx *sqlx.Tx, orderItemID string) error {
	var claims []returns.ReturnClaim
	err := tx.SelectContext(ctx, &claims, `
        SELECT orr.status, ri.return_quantity AS quantity
        FROM return_items ri
        JOIN order_returns orr ON orr.id = ri.return_id
        WHERE ri.order_item_id = $1
    `, orderItemID)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `UPDATE order_items SET is_return = $1 WHERE id = $2`,
		returns.ItemFlagged(claims), orderItemID)
	return err
}

func lockReturn(ctx context.Context, tx *sqlx.Tx, id string) (*model.OrderReturn, error) {
	var ret model.OrderReturn
	err := tx.GetContext(ctx, &ret, `SELECT * FROM order_returns WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("return")
		}
		return nil, err
	}
	if err := tx.SelectContext(ctx, &ret.Items, `SELECT * FROM return_items WHERE return_id = $1`, id); err != nil {
		return nil, err
	}
	return &ret, nil
}

func restockVariant(ctx context.Context, tx *sqlx.Tx, variantID string, qty int, returnID, createdBy string) error {
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
	after := before + qty
	_, err = tx.ExecContext(ctx, `
        UPDATE inventory SET quantity = $1, updated_at = $2 WHERE variant_id = $3
    `, after, time.Now(), variantID)
	if err != nil {
		return err
	}

	var by *string
	if createdBy != "" {
		by = &createdBy
	}
	_, err = tx.ExecContext(ctx, `
        INSERT INTO inventory_movements
            (id, variant_id, movement_type, quantity_change, quantity_before, quantity_after, reference_type, reference_id, notes, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, uuid.New().String(), variantID, model.MovementReturn, qty, before, after, model.MovementReturn, returnID, "return approved", by, time.Now())
	return err
}
