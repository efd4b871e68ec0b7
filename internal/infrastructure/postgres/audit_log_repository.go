package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lizmareco/distrisoft-sub002/internal/application/production"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/entity"
	"github.com/lizmareco/distrisoft-sub002/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)
var _ production.AuditLog = (*AuditLogRepo)(nil)

// AuditLogRepo log de auditoría append-only sobre PostgreSQL.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Append inserta un registro de auditoría. El caller decide qué hacer con el
// error; el núcleo de negocio lo loguea y lo descarta.
func (r *AuditLogRepo) Append(record *entity.AuditRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO audit_log (id, entity, record_id, action, before, after, user_id, request_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.Entity, record.RecordID, record.Action,
		record.Before, record.After, record.UserID, record.RequestIP, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}
