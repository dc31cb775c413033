package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/model"
	"hardware-pos/internal/product"
	"hardware-pos/internal/product/dto"
	"hardware-pos/pkg/cache"
	"hardware-pos/pkg/logger"
	"hardware-pos/pkg/search"
)

const (
	productCachePrefix = "product:"
	productCacheTTL    = 10 * time.Minute
	productIndex       = "products"
	syncTimeout        = 10 * time.Second
)

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	search *search.Client
	logger logger.ZapLogger
}

// NewProductUseCase builds the product usecase. search may be nil when the
// cluster is unreachable at startup; lookups then fall back to the database.
func NewProductUseCase(repo product.Repository, rc *cache.RedisClient, sc *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  rc,
		search: sc,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if input.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	if len(input.Variants) == 0 {
		return nil, apperr.Validation("variants", "at least one variant is required")
	}

	now := time.Now()
	prod := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
	}
	if input.CategoryID != "" {
		prod.CategoryID = &input.CategoryID
	}
	if input.PhotoURL != "" {
		prod.PhotoURL = &input.PhotoURL
	}

	variants, err := buildVariants(prod.ID, input.Variants, now)
	if err != nil {
		return nil, err
	}
	prod.Variants = variants

	if err := uc.repo.Create(ctx, prod); err != nil {
		return nil, err
	}

	go uc.syncToIndex(prod)
	return prod, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	cacheKey := productCachePrefix + id
	if cached, err := uc.cache.Client.Get(ctx, cacheKey).Bytes(); err == nil {
		var prod model.Product
		if err := json.Unmarshal(cached, &prod); err == nil {
			return &prod, nil
		}
	} else if err != redis.Nil {
		uc.logger.Warn("product cache read failed", zap.Error(err))
	}

	prod, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prod == nil {
		return nil, apperr.NotFound("product")
	}

	if body, err := json.Marshal(prod); err == nil {
		if err := uc.cache.Client.Set(ctx, cacheKey, body, productCacheTTL).Err(); err != nil {
			uc.logger.Warn("product cache write failed", zap.Error(err))
		}
	}
	return prod, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if input.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}

	prod, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if prod == nil {
		return nil, apperr.NotFound("product")
	}

	now := time.Now()
	prod.Name = input.Name
	prod.CategoryID = nil
	if input.CategoryID != "" {
		prod.CategoryID = &input.CategoryID
	}
	prod.PhotoURL = nil
	if input.PhotoURL != "" {
		prod.PhotoURL = &input.PhotoURL
	}
	prod.UpdatedAt = now

	if len(input.Variants) > 0 {
		variants, err := buildVariants(prod.ID, input.Variants, now)
		if err != nil {
			return nil, err
		}
		prod.Variants = variants
	}

	if err := uc.repo.Update(ctx, prod); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, prod.ID)
	go uc.syncToIndex(prod)
	return prod, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	prod, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if prod == nil {
		return nil
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, id)
	go uc.removeFromIndex(id)
	return nil
}

func (uc *productUseCase) SearchProducts(ctx context.Context, query string, limit int) ([]model.Product, error) {
	if query == "" {
		return nil, apperr.Validation("q", "query is required")
	}
	if limit <= 0 {
		limit = 20
	}

	// Fall back to the database when the search cluster is not wired.
	if uc.search == nil {
		items, _, err := uc.repo.FindAll(ctx, &dto.ProductFilters{Search: query, Page: 1, PageSize: limit})
		return items, err
	}

	result, err := uc.search.Search(ctx, productIndex, map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "category.name"},
				"fuzziness": "AUTO",
			},
		},
	})
	if err != nil {
		uc.logger.Warn("search query failed, falling back to database", zap.Error(err))
		items, _, dbErr := uc.repo.FindAll(ctx, &dto.ProductFilters{Search: query, Page: 1, PageSize: limit})
		return items, dbErr
	}

	products := make([]model.Product, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var prod model.Product
		if err := json.Unmarshal(hit.Source, &prod); err != nil {
			continue
		}
		products = append(products, prod)
	}
	return products, nil
}

func (uc *productUseCase) invalidate(ctx context.Context, id string) {
	if err := uc.cache.Client.Del(ctx, productCachePrefix+id).Err(); err != nil {
		uc.logger.Warn("product cache invalidation failed", zap.String("product_id", id), zap.Error(err))
	}
}

func (uc *productUseCase) syncToIndex(prod *model.Product) {
	if uc.search == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	if err := uc.search.Index(ctx, productIndex, prod.ID, prod); err != nil {
		uc.logger.Warn("product index sync failed", zap.String("product_id", prod.ID), zap.Error(err))
	}
}

func (uc *productUseCase) removeFromIndex(id string) {
	if uc.search == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	if err := uc.search.Delete(ctx, productIndex, id); err != nil {
		uc.logger.Warn("product index delete failed", zap.String("product_id", id), zap.Error(err))
	}
}

func buildVariants(productID string, inputs []dto.VariantInput, now time.Time) ([]model.ProductVariant, error) {
	variants := make([]model.ProductVariant, 0, len(inputs))
	for _, in := range inputs {
		if in.Size == "" {
			return nil, apperr.Validation("size", "variant size is required")
		}
		if in.Price.IsNegative() {
			return nil, apperr.Validation("price", "price must not be negative")
		}
		if in.Discount.IsNegative() || in.Discount.GreaterThan(model.MaxPercent) {
			return nil, apperr.Validation("discount", "discount must be between 0 and 100")
		}
		if in.GST.IsNegative() {
			return nil, apperr.Validation("gst", "gst must not be negative")
		}

		id := in.ID
		if id == "" {
			id = uuid.New().String()
		}
		v := model.ProductVariant{
			BaseModel: model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
			ProductID: productID,
			Size:      in.Size,
			Price:     in.Price,
			Discount:  in.Discount,
			GST:       in.GST,
		}
		v.RecomputeTotalPrice()
		variants = append(variants, v)
	}
	return variants, nil
}
