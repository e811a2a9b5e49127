package models

import (
	"time"
)

// AuditAction names a change recorded in the audit log
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// AuditEntry records who changed which entity
type AuditEntry struct {
	ID        int64       `json:"id" db:"id"`
	Entity    string      `json:"entidad" db:"entity"`
	EntityID  int64       `json:"entidadId" db:"entity_id"`
	Action    AuditAction `json:"accion" db:"action"`
	UserID    *int64      `json:"usuarioId,omitempty" db:"user_id"`
	Detail    string      `json:"detalle,omitempty" db:"detail"`
	Timestamp time.Time   `json:"timestamp" db:"created_at"`
}
