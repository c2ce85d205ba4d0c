package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Vileyy/admin-halora-app/internal/analytics"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
)

type ReviewQuery struct {
	Rating int
	Search string
}

type ReviewService interface {
	ListReviews(ctx context.Context, q ReviewQuery) ([]model.Review, error)
	GetStats(ctx context.Context) (model.ReviewStats, error)
	DeleteReview(ctx context.Context, actorID, id string) error
}

type reviewService struct {
	repo     repository.ReviewRepository
	auditSvc AuditService
}

func NewReviewService(repo repository.ReviewRepository, auditSvc AuditService) ReviewService {
	return &reviewService{repo: repo, auditSvc: auditSvc}
}

// ListReviews returns the newest reviews first.
func (s *reviewService) ListReviews(ctx context.Context, q ReviewQuery) ([]model.Review, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	result := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		if q.Rating > 0 && r.Rating != q.Rating {
			continue
		}
		if term != "" && !reviewMatches(r, term) {
			continue
		}
		result = append(result, r)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt.Time)
	})
	return result, nil
}

func reviewMatches(r model.Review, term string) bool {
	for _, field := range []string{r.Comment, r.ProductName, r.UserName} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (s *reviewService) GetStats(ctx context.Context) (model.ReviewStats, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return model.ReviewStats{}, err
	}
	return analytics.GetReviewStats(reviews), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actorID, id string) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "review")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.auditSvc.Record(ctx, actorID, model.ActionDeleteReview, id, review.ProductName, map[string]interface{}{
		"rating": review.Rating,
		"userId": review.UserID,
	})
	return nil
}
