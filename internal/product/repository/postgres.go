package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"hardware-pos/internal/model"
	"hardware-pos/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, prod *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
        INSERT INTO products (id, category_id, name, photo_url, created_at, updated_at)
        VALUES (:id, :category_id, :name, :photo_url, :created_at, :updated_at)
    `, prod)
	if err != nil {
		return err
	}

	for i := range prod.Variants {
		if err := insertVariant(ctx, tx, &prod.Variants[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertVariant(ctx context.Context, tx *sqlx.Tx, v *model.ProductVariant) error {
	_, err := tx.NamedExecContext(ctx, `
        INSERT INTO product_variants (id, product_id, size, price, discount, gst, total_price, created_at, updated_at)
        VALUES (:id, :product_id, :size, :price, :discount, :gst, :total_price, :created_at, :updated_at)
    `, v)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var prod model.Product
	err := r.DB.GetContext(ctx, &prod, `SELECT * FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := r.attachRelations(ctx, []*model.Product{&prod}); err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *PGRepository) FindVariantByID(ctx context.Context, variantID string) (*model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.DB.GetContext(ctx, &v, `SELECT * FROM product_variants WHERE id = $1`, variantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Search != "" {
		conditions = append(conditions, "name ILIKE :search")
		args["search"] = "%" + f.Search + "%"
	}
	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM products"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM products" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var items []model.Product
	if err := nstmt.SelectContext(ctx, &items, args); err != nil {
		return nil, 0, err
	}

	ptrs := make([]*model.Product, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	if err := r.attachRelations(ctx, ptrs); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

// attachRelations loads variants and categories for the given products in two
// batched queries instead of one per product.
func (r *PGRepository) attachRelations(ctx context.Context, prods []*model.Product) error {
	if len(prods) == 0 {
		return nil
	}

	productIDs := make([]string, 0, len(prods))
	categoryIDs := make([]string, 0, len(prods))
	for _, p := range prods {
		productIDs = append(productIDs, p.ID)
		if p.CategoryID != nil {
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
	}

	query, args, err := sqlx.In(`SELECT * FROM product_variants WHERE product_id IN (?) ORDER BY size ASC`, productIDs)
	if err != nil {
		return err
	}
	var variants []model.ProductVariant
	if err := r.DB.SelectContext(ctx, &variants, r.DB.Rebind(query), args...); err != nil {
		return err
	}

	byProduct := map[string][]model.ProductVariant{}
	for _, v := range variants {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}

	byCategory := map[string]*model.Category{}
	if len(categoryIDs) > 0 {
		query, args, err = sqlx.In(`SELECT * FROM categories WHERE id IN (?)`, categoryIDs)
		if err != nil {
			return err
		}
		var cats []model.Category
		if err := r.DB.SelectContext(ctx, &cats, r.DB.Rebind(query), args...); err != nil {
			return err
		}
		for i := range cats {
			byCategory[cats[i].ID] = &cats[i]
		}
	}

	for _, p := range prods {
		p.Variants = byProduct[p.ID]
		if p.CategoryID != nil {
			p.Category = byCategory[*p.CategoryID]
		}
	}
	return nil
}

// Update replaces the product row and reconciles its variants: incoming
// variants with a known id are updated, new ones inserted, and rows absent
// from the incoming set deleted. All within one transaction.
func (r *PGRepository) Update(ctx context.Context, prod *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, `
        UPDATE products
        SET category_id = :category_id, name = :name, photo_url = :photo_url, updated_at = :updated_at
        WHERE id = :id
    `, prod)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product %s not updated", prod.ID)
	}

	keepIDs := make([]string, 0, len(prod.Variants))
	for i := range prod.Variants {
		v := &prod.Variants[i]
		keepIDs = append(keepIDs, v.ID)

		upd, err := tx.NamedExecContext(ctx, `
            UPDATE product_variants
            SET size = :size, price = :price, discount = :discount, gst = :gst,
                total_price = :total_price, updated_at = :updated_at
            WHERE id = :id AND product_id = :product_id
        `, v)
		if err != nil {
			return err
		}
		if n, _ := upd.RowsAffected(); n == 0 {
			if err := insertVariant(ctx, tx, v); err != nil {
				return err
			}
		}
	}

	if len(keepIDs) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_variants WHERE product_id = $1`, prod.ID); err != nil {
			return err
		}
	} else {
		query, args, err := sqlx.In(`DELETE FROM product_variants WHERE product_id = ? AND id NOT IN (?)`, prod.ID, keepIDs)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}
