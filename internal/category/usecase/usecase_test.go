package usecase

import (
	"context"
	"testing"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/category/dto"
	"hardware-pos/internal/model"
	"hardware-pos/pkg/logger"
)

type mockCategoryRepo struct {
	categories map[string]*model.Category
}

func (m *mockCategoryRepo) Create(_ context.Context, cat *model.Category) error {
	m.categories[cat.ID] = cat
	return nil
}

func (m *mockCategoryRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	return m.categories[id], nil
}

func (m *mockCategoryRepo) FindAll(_ context.Context, _ *dto.CategoryFilters) ([]model.Category, int, error) {
	out := make([]model.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (m *mockCategoryRepo) Update(_ context.Context, cat *model.Category) error {
	m.categories[cat.ID] = cat
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string) error {
	delete(m.categories, id)
	return nil
}

func testLogger() logger.ZapLogger {
	return logger.NewZapLogger(&logger.ZapLoggerConfig{
		Level:             "error",
		Encoding:          "console",
		DisableCaller:     true,
		DisableStacktrace: true,
	})
}

func TestCategoryCRUD(t *testing.T) {
	repo := &mockCategoryRepo{categories: map[string]*model.Category{}}
	uc := NewCategoryUseCase(repo, testLogger())
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Paints", Description: "Interior and exterior"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if cat.ID == "" {
		t.Error("created category has no id")
	}
	if cat.Description == nil || *cat.Description != "Interior and exterior" {
		t.Error("description was not stored")
	}

	got, err := uc.GetCategory(ctx, cat.ID)
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if got.Name != "Paints" {
		t.Errorf("name = %s, want Paints", got.Name)
	}

	updated, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: cat.ID, Name: "Paints & Finishes"})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if updated.Name != "Paints & Finishes" {
		t.Errorf("name = %s, want Paints & Finishes", updated.Name)
	}
	if updated.Description != nil {
		t.Error("empty description on update must clear the field")
	}

	if err := uc.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if _, err := uc.GetCategory(ctx, cat.ID); !apperr.IsNotFound(err) {
		t.Errorf("deleted category must be not found, got %v", err)
	}
}

func TestCategoryValidation(t *testing.T) {
	uc := NewCategoryUseCase(&mockCategoryRepo{categories: map[string]*model.Category{}}, testLogger())

	if _, err := uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{}); !apperr.IsValidation(err) {
		t.Errorf("missing name must fail validation, got %v", err)
	}
	if _, err := uc.GetCategory(context.Background(), "ghost"); !apperr.IsNotFound(err) {
		t.Errorf("unknown id must be not found, got %v", err)
	}
}
