package entity

import (
	"time"
)

const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
)

// Report has no secondary index; the admin queue is a full prefix scan.
type Report struct {
	ID         string    `json:"id"`
	ReporterID string    `json:"reporter_id"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
