package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
)

type BannerRequest struct {
	Title    string `json:"title" binding:"required"`
	ImageURL string `json:"imageUrl" binding:"required,url"`
	LinkURL  string `json:"linkUrl"`
	IsActive bool   `json:"isActive"`
}

type BannerService interface {
	ListBanners(ctx context.Context) ([]model.Banner, error)
	CreateBanner(ctx context.Context, actorID string, req BannerRequest) (*model.Banner, error)
	UpdateBanner(ctx context.Context, actorID, id string, req BannerRequest) (*model.Banner, error)
	SetActive(ctx context.Context, actorID, id string, active bool) error
	DeleteBanner(ctx context.Context, actorID, id string) error
}

type bannerService struct {
	repo     repository.BannerRepository
	auditSvc AuditService
	now      func() time.Time
}

func NewBannerService(repo repository.BannerRepository, auditSvc AuditService) BannerService {
	return &bannerService{repo: repo, auditSvc: auditSvc, now: time.Now}
}

func (s *bannerService) ListBanners(ctx context.Context) ([]model.Banner, error) {
	return s.repo.List(ctx)
}

func (s *bannerService) CreateBanner(ctx context.Context, actorID string, req BannerRequest) (*model.Banner, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalid("title is required")
	}

	now := model.NewTimestamp(s.now())
	banner := &model.Banner{
		Title:     strings.TrimSpace(req.Title),
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		IsActive:  req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}

	s.auditSvc.Record(ctx, actorID, model.ActionCreateBanner, banner.ID, banner.Title, req)
	return banner, nil
}

func (s *bannerService) UpdateBanner(ctx context.Context, actorID, id string, req BannerRequest) (*model.Banner, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "banner")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalid("title is required")
	}

	now := s.now()
	if err := s.repo.Update(ctx, id, map[string]interface{}{
		"title":     strings.TrimSpace(req.Title),
		"imageUrl":  req.ImageURL,
		"linkUrl":   req.LinkURL,
		"isActive":  req.IsActive,
		"updatedAt": now.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("update banner: %w", err)
	}

	updated := *existing
	updated.Title = strings.TrimSpace(req.Title)
	updated.ImageURL = req.ImageURL
	updated.LinkURL = req.LinkURL
	updated.IsActive = req.IsActive
	updated.UpdatedAt = model.NewTimestamp(now)

	s.auditSvc.Record(ctx, actorID, model.ActionUpdateBanner, id, updated.Title, req)
	return &updated, nil
}

func (s *bannerService) SetActive(ctx context.Context, actorID, id string, active bool) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "banner")
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{
		"isActive":  active,
		"updatedAt": s.now().UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("toggle banner: %w", err)
	}

	s.auditSvc.Record(ctx, actorID, model.ActionUpdateBanner, id, existing.Title, map[string]interface{}{"isActive": active})
	return nil
}

func (s *bannerService) DeleteBanner(ctx context.Context, actorID, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "banner")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}

	s.auditSvc.Record(ctx, actorID, model.ActionDeleteBanner, id, existing.Title, nil)
	return nil
}
