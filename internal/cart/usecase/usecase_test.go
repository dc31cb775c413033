package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/cart/dto"
	"hardware-pos/internal/model"
	productdto "hardware-pos/internal/product/dto"
	"hardware-pos/pkg/logger"
)

type mockCartRepo struct {
	upserted *model.CartItem
	items    map[string]*model.CartItem
	cleared  string
}

func (m *mockCartRepo) Upsert(_ context.Context, item *model.CartItem, replace bool) error {
	if prev := m.upserted; prev != nil && prev.OwnerID == item.OwnerID && prev.VariantID == item.VariantID && !replace {
		item.Quantity += prev.Quantity
	}
	m.upserted = item
	return nil
}

func (m *mockCartRepo) FindByOwner(_ context.Context, ownerID string) ([]model.CartItem, error) {
	var out []model.CartItem
	for _, it := range m.items {
		if it.OwnerID == ownerID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (m *mockCartRepo) FindByID(_ context.Context, id string) (*model.CartItem, error) {
	return m.items[id], nil
}

func (m *mockCartRepo) Update(_ context.Context, item *model.CartItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockCartRepo) DeleteByOwner(_ context.Context, ownerID string) error {
	m.cleared = ownerID
	return nil
}

type mockProductRepo struct {
	variants map[string]*model.ProductVariant
}

func (m *mockProductRepo) Create(_ context.Context, _ *model.Product) error { return nil }
func (m *mockProductRepo) FindByID(_ context.Context, _ string) (*model.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) FindAll(_ context.Context, _ *productdto.ProductFilters) ([]model.Product, int, error) {
	return nil, 0, nil
}
func (m *mockProductRepo) Update(_ context.Context, _ *model.Product) error { return nil }
func (m *mockProductRepo) Delete(_ context.Context, _ string) error         { return nil }
func (m *mockProductRepo) FindVariantByID(_ context.Context, id string) (*model.ProductVariant, error) {
	return m.variants[id], nil
}

func testLogger() logger.ZapLogger {
	return logger.NewZapLogger(&logger.ZapLoggerConfig{
		Level:             "error",
		Encoding:          "console",
		DisableCaller:     true,
		DisableStacktrace: true,
	})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testProducts() *mockProductRepo {
	return &mockProductRepo{variants: map[string]*model.ProductVariant{
		"v1": {
			BaseModel: model.BaseModel{ID: "v1"},
			ProductID: "p1",
			Size:      "1L",
			Price:     dec("450"),
			GST:       dec("18"),
		},
	}}
}

func TestAddItemSnapshotsVariantPrice(t *testing.T) {
	repo := &mockCartRepo{}
	uc := NewCartUseCase(repo, testProducts(), testLogger())

	item, err := uc.AddItem(context.Background(), &dto.AddItemInput{
		OwnerID:   "till-1",
		VariantID: "v1",
		Quantity:  3,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if !item.Price.Equal(dec("450")) {
		t.Errorf("price = %s, want variant price 450", item.Price)
	}
	if !item.GST.Equal(dec("18")) {
		t.Errorf("gst = %s, want variant gst 18", item.GST)
	}
	if repo.upserted == nil {
		t.Fatal("item was not persisted")
	}
	if repo.upserted.OwnerID != "till-1" {
		t.Errorf("owner = %s, want till-1", repo.upserted.OwnerID)
	}
}

func TestAddItemMergesUnlessReplace(t *testing.T) {
	repo := &mockCartRepo{}
	uc := NewCartUseCase(repo, testProducts(), testLogger())

	add := func(qty int, replace bool) *model.CartItem {
		t.Helper()
		item, err := uc.AddItem(context.Background(), &dto.AddItemInput{
			OwnerID:   "till-1",
			VariantID: "v1",
			Quantity:  qty,
			Replace:   replace,
		})
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		return item
	}

	add(3, false)
	if item := add(2, false); item.Quantity != 5 {
		t.Errorf("quantity = %d, want merged 5", item.Quantity)
	}
	if item := add(2, true); item.Quantity != 2 {
		t.Errorf("quantity = %d, want replaced 2", item.Quantity)
	}
}

func TestAddItemPriceOverride(t *testing.T) {
	uc := NewCartUseCase(&mockCartRepo{}, testProducts(), testLogger())

	override := dec("399.99")
	item, err := uc.AddItem(context.Background(), &dto.AddItemInput{
		OwnerID:   "till-1",
		VariantID: "v1",
		Quantity:  1,
		Price:     &override,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if !item.Price.Equal(override) {
		t.Errorf("price = %s, want override 399.99", item.Price)
	}
}

func TestAddItemRejectsBadInput(t *testing.T) {
	uc := NewCartUseCase(&mockCartRepo{}, testProducts(), testLogger())
	negative := dec("-1")

	cases := []struct {
		name  string
		input dto.AddItemInput
	}{
		{"missing owner", dto.AddItemInput{VariantID: "v1", Quantity: 1}},
		{"zero quantity", dto.AddItemInput{OwnerID: "t", VariantID: "v1"}},
		{"negative discount", dto.AddItemInput{OwnerID: "t", VariantID: "v1", Quantity: 1, ItemDiscount: dec("-2")}},
		{"percent over 100", dto.AddItemInput{OwnerID: "t", VariantID: "v1", Quantity: 1, ItemDiscount: dec("120"), IsPercentage: true}},
		{"negative price", dto.AddItemInput{OwnerID: "t", VariantID: "v1", Quantity: 1, Price: &negative}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.AddItem(context.Background(), &tc.input); !apperr.IsValidation(err) {
				t.Errorf("want validation error, got %v", err)
			}
		})
	}
}

func TestAddItemUnknownVariant(t *testing.T) {
	uc := NewCartUseCase(&mockCartRepo{}, testProducts(), testLogger())

	_, err := uc.AddItem(context.Background(), &dto.AddItemInput{
		OwnerID:   "till-1",
		VariantID: "ghost",
		Quantity:  1,
	})
	if !apperr.IsNotFound(err) {
		t.Errorf("want not found, got %v", err)
	}
}

func TestUpdateItemOwnership(t *testing.T) {
	repo := &mockCartRepo{items: map[string]*model.CartItem{
		"c1": {ID: "c1", OwnerID: "till-1", VariantID: "v1", Quantity: 2, Price: dec("450")},
	}}
	uc := NewCartUseCase(repo, testProducts(), testLogger())

	qty := 5
	item, err := uc.UpdateItem(context.Background(), &dto.UpdateItemInput{
		OwnerID:  "till-1",
		ItemID:   "c1",
		Quantity: &qty,
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if item.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", item.Quantity)
	}

	// Another owner must not see or touch the row.
	if _, err := uc.UpdateItem(context.Background(), &dto.UpdateItemInput{
		OwnerID:  "till-2",
		ItemID:   "c1",
		Quantity: &qty,
	}); !apperr.IsNotFound(err) {
		t.Errorf("foreign owner update must be not found, got %v", err)
	}
	if err := uc.RemoveItem(context.Background(), "till-2", "c1"); !apperr.IsNotFound(err) {
		t.Errorf("foreign owner remove must be not found, got %v", err)
	}
}

func TestClearCart(t *testing.T) {
	repo := &mockCartRepo{}
	uc := NewCartUseCase(repo, testProducts(), testLogger())

	if err := uc.ClearCart(context.Background(), "till-1"); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	if repo.cleared != "till-1" {
		t.Errorf("cleared owner = %s, want till-1", repo.cleared)
	}
}
