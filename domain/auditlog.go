package domain

import (
	"time"

	"gorm.io/datatypes"
)

type AuditAction string

const (
	ActionCreate AuditAction = "CREATE"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"
)

// AuditLog is one append-only row of the mutation trail. Before and after are
// schema-less JSONB snapshots because every entity type shares this table.
// EntityID is a string so it fits both numeric ids and generated order ids.
type AuditLog struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Timestamp time.Time      `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
	Entity    string         `gorm:"column:entity;type:varchar(100);not null;index:idx_audit_entity" json:"entity"`
	EntityID  string         `gorm:"column:entity_id;type:varchar(100);not null;index:idx_audit_entity" json:"entity_id"`
	Action    AuditAction    `gorm:"column:action;type:varchar(20);not null" json:"action"`
	Before    datatypes.JSON `gorm:"column:before;type:jsonb" json:"before,omitempty"`
	After     datatypes.JSON `gorm:"column:after;type:jsonb" json:"after,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
