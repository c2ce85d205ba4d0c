package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
)

type ProductQuery struct {
	Category string
	Search   string
}

type ProductRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Price       int64               `json:"price" binding:"gte=0"`
	Category    string              `json:"category" binding:"required"`
	Image       string              `json:"image"`
	Stock       int                 `json:"stock" binding:"gte=0"`
	Variants    []model.ItemVariant `json:"variants"`
}

type ProductService interface {
	ListProducts(ctx context.Context, q ProductQuery) ([]model.Product, error)
	CreateProduct(ctx context.Context, actorID string, req ProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, actorID, id string, req ProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, actorID, id string) error
}

type productService struct {
	repo     repository.ProductRepository
	auditSvc AuditService
	now      func() time.Time
}

func NewProductService(repo repository.ProductRepository, auditSvc AuditService) ProductService {
	return &productService{repo: repo, auditSvc: auditSvc, now: time.Now}
}

func (s *productService) ListProducts(ctx context.Context, q ProductQuery) ([]model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		if q.Category != "" && q.Category != "all" && p.Category != q.Category {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (s *productService) CreateProduct(ctx context.Context, actorID string, req ProductRequest) (*model.Product, error) {
	if err := validateProduct(&req); err != nil {
		return nil, err
	}

	now := model.NewTimestamp(s.now())
	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Stock:       req.Stock,
		Variants:    req.Variants,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.auditSvc.Record(ctx, actorID, model.ActionCreateProduct, product.ID, product.Name, req)
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, actorID, id string, req ProductRequest) (*model.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	if err := validateProduct(&req); err != nil {
		return nil, err
	}

	now := s.now()
	fields := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
		"category":    req.Category,
		"image":       req.Image,
		"stock":       req.Stock,
		"variants":    variantFields(req.Variants),
		"updatedAt":   now.UTC().Format(time.RFC3339),
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	updated := *existing
	updated.Name = req.Name
	updated.Description = req.Description
	updated.Price = req.Price
	updated.Category = req.Category
	updated.Image = req.Image
	updated.Stock = req.Stock
	updated.Variants = req.Variants
	updated.UpdatedAt = model.NewTimestamp(now)

	s.auditSvc.Record(ctx, actorID, model.ActionUpdateProduct, id, updated.Name, req)
	return &updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, actorID, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.auditSvc.Record(ctx, actorID, model.ActionDeleteProduct, id, existing.Name, nil)
	return nil
}

func validateProduct(req *ProductRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if req.Name == "" {
		return invalid("name is required")
	}
	if req.Category == "" {
		return invalid("category is required")
	}
	if req.Price < 0 || req.Stock < 0 {
		return invalid("price and stock cannot be negative")
	}
	return nil
}

// variantFields renders variants as plain maps, or nil to drop the field.
func variantFields(variants []model.ItemVariant) interface{} {
	if len(variants) == 0 {
		return nil
	}
	out := make([]interface{}, 0, len(variants))
	for _, v := range variants {
		out = append(out, map[string]interface{}{"name": v.Name, "price": v.Price})
	}
	return out
}
