package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/Vileyy/admin-halora-app/internal/logger"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
	"github.com/Vileyy/admin-halora-app/pkg/pagination"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	AdminID    string `json:"admin_id"`
	AdminEmail string `json:"admin_email"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

// AuditQuery filters the audit trail. Action matches case-insensitively.
type AuditQuery struct {
	Action   string
	EntityID string
	AdminID  string
}

type AuditService interface {
	// Record stores an audit entry. Failures are logged and never fail the caller,
	// since the audited change has already been applied to the document store.
	Record(ctx context.Context, actorID, action, entityID, entityName string, details interface{})
	GetAuditLogs(ctx context.Context, q AuditQuery, page pagination.Params) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Record(ctx context.Context, actorID, action, entityID, entityName string, details interface{}) {
	entry := &model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    "{}",
	}
	if id, err := uuid.Parse(actorID); err == nil {
		entry.AdminID = &id
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = string(raw)
		}
	}

	if err := s.repo.Log(ctx, entry); err != nil {
		logger.WithContext(ctx).WithError(err).WithFields(map[string]interface{}{
			"action":    action,
			"entity_id": entityID,
		}).Warn("failed to write audit log")
	}
}

func (s *auditService) GetAuditLogs(ctx context.Context, q AuditQuery, page pagination.Params) ([]AuditLogResponse, int64, error) {
	filter := repository.AuditFilter{
		Action:   strings.ToUpper(strings.TrimSpace(q.Action)),
		EntityID: strings.TrimSpace(q.EntityID),
	}
	if q.AdminID != "" {
		id, err := uuid.Parse(q.AdminID)
		if err != nil {
			return nil, 0, invalid("admin_id %q is not a valid id", q.AdminID)
		}
		filter.AdminID = id.String()
	}

	logs, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		email := "system"
		adminID := ""
		if l.Admin != nil {
			email = l.Admin.Email
		}
		if l.AdminID != nil {
			adminID = l.AdminID.String()
		}

		res = append(res, AuditLogResponse{
			ID:         l.ID.String(),
			AdminID:    adminID,
			AdminEmail: email,
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return res, total, nil
}
