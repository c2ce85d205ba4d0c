package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Vileyy/admin-halora-app/internal/analytics"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
)

type VoucherQuery struct {
	Status string
	Search string
}

type VoucherRequest struct {
	Code          string              `json:"code" binding:"required"`
	Title         string              `json:"title" binding:"required"`
	DiscountType  model.DiscountType  `json:"discountType" binding:"required"`
	DiscountValue int64               `json:"discountValue" binding:"required,gt=0"`
	Type          model.VoucherType   `json:"type" binding:"required"`
	MinOrder      int64               `json:"minOrder" binding:"gte=0"`
	StartDate     int64               `json:"startDate" binding:"required"`
	EndDate       int64               `json:"endDate" binding:"required"`
	UsageLimit    int                 `json:"usageLimit" binding:"gte=0"`
	Status        model.VoucherStatus `json:"status"`
}

type VoucherService interface {
	ListVouchers(ctx context.Context, q VoucherQuery) ([]model.Voucher, error)
	GetStats(ctx context.Context) (model.VoucherStats, error)
	CreateVoucher(ctx context.Context, actorID string, req VoucherRequest) (*model.Voucher, error)
	UpdateVoucher(ctx context.Context, actorID, id string, req VoucherRequest) (*model.Voucher, error)
	DeleteVoucher(ctx context.Context, actorID, id string) error
}

type voucherService struct {
	repo     repository.VoucherRepository
	auditSvc AuditService
	now      func() time.Time
}

func NewVoucherService(repo repository.VoucherRepository, auditSvc AuditService) VoucherService {
	return &voucherService{repo: repo, auditSvc: auditSvc, now: time.Now}
}

// ListVouchers returns every voucher with its effective status. The status
// filter is applied to the effective status, not the stored one.
func (s *voucherService) ListVouchers(ctx context.Context, q VoucherQuery) ([]model.Voucher, error) {
	vouchers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(q.Search))
	result := make([]model.Voucher, 0, len(vouchers))
	for _, v := range analytics.ApplyVoucherStatus(vouchers, s.now()) {
		if q.Status != "" && q.Status != "all" && string(v.Status) != q.Status {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(v.Code), term) && !strings.Contains(strings.ToLower(v.Title), term) {
			continue
		}
		result = append(result, v)
	}
	return result, nil
}

func (s *voucherService) GetStats(ctx context.Context) (model.VoucherStats, error) {
	vouchers, err := s.repo.List(ctx)
	if err != nil {
		return model.VoucherStats{}, err
	}
	return analytics.CalculateVoucherStats(vouchers, s.now()), nil
}

func (s *voucherService) CreateVoucher(ctx context.Context, actorID string, req VoucherRequest) (*model.Voucher, error) {
	if err := s.validate(ctx, "", &req); err != nil {
		return nil, err
	}

	now := model.NewTimestamp(s.now())
	voucher := &model.Voucher{
		Code:          req.Code,
		Title:         req.Title,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Type:          req.Type,
		MinOrder:      req.MinOrder,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		UsageLimit:    req.UsageLimit,
		Status:        req.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, voucher); err != nil {
		return nil, fmt.Errorf("create voucher: %w", err)
	}

	s.auditSvc.Record(ctx, actorID, model.ActionCreateVoucher, voucher.ID, voucher.Code, req)
	return voucher, nil
}

func (s *voucherService) UpdateVoucher(ctx context.Context, actorID, id string, req VoucherRequest) (*model.Voucher, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "voucher")
	}
	if err := s.validate(ctx, id, &req); err != nil {
		return nil, err
	}

	now := s.now()
	fields := map[string]interface{}{
		"code":          req.Code,
		"title":         req.Title,
		"discountType":  string(req.DiscountType),
		"discountValue": req.DiscountValue,
		"type":          string(req.Type),
		"minOrder":      req.MinOrder,
		"startDate":     req.StartDate,
		"endDate":       req.EndDate,
		"usageLimit":    req.UsageLimit,
		"status":        string(req.Status),
		"updatedAt":     now.UTC().Format(time.RFC3339),
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update voucher: %w", err)
	}

	updated := *existing
	updated.Code = req.Code
	updated.Title = req.Title
	updated.DiscountType = req.DiscountType
	updated.DiscountValue = req.DiscountValue
	updated.Type = req.Type
	updated.MinOrder = req.MinOrder
	updated.StartDate = req.StartDate
	updated.EndDate = req.EndDate
	updated.UsageLimit = req.UsageLimit
	updated.Status = req.Status
	updated.UpdatedAt = model.NewTimestamp(now)

	s.auditSvc.Record(ctx, actorID, model.ActionUpdateVoucher, id, updated.Code, req)
	return &updated, nil
}

func (s *voucherService) DeleteVoucher(ctx context.Context, actorID, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "voucher")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete voucher: %w", err)
	}

	s.auditSvc.Record(ctx, actorID, model.ActionDeleteVoucher, id, existing.Code, nil)
	return nil
}

// validate normalizes req in place and checks it against the stored vouchers.
// selfID is the voucher being updated and is ignored by the uniqueness check.
func (s *voucherService) validate(ctx context.Context, selfID string, req *VoucherRequest) error {
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	req.Title = strings.TrimSpace(req.Title)
	if req.Code == "" {
		return invalid("code is required")
	}

	switch req.DiscountType {
	case model.DiscountTypePercentage:
		if req.DiscountValue > 100 {
			return invalid("percentage discount cannot exceed 100")
		}
	case model.DiscountTypeFixed:
	default:
		return invalid("unknown discount type %q", req.DiscountType)
	}
	if req.DiscountValue <= 0 {
		return invalid("discount value must be positive")
	}

	if req.Type != model.VoucherTypeShipping && req.Type != model.VoucherTypeProduct {
		return invalid("unknown voucher type %q", req.Type)
	}
	if req.StartDate >= req.EndDate {
		return invalid("startDate must be before endDate")
	}

	switch req.Status {
	case "":
		req.Status = model.VoucherStatusActive
	case model.VoucherStatusActive, model.VoucherStatusInactive:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	vouchers, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, v := range vouchers {
		if v.ID != selfID && strings.EqualFold(v.Code, req.Code) {
			return fmt.Errorf("%w: voucher code %s already exists", ErrConflict, req.Code)
		}
	}
	return nil
}
