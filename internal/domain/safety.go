package domain

import (
	"slices"
	"time"
)

type Block struct {
	ID        string    `json:"id" db:"id"`
	BlockerID string    `json:"blocker_id" db:"blocker_id"`
	BlockedID string    `json:"blocked_id" db:"blocked_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

var ReportReasons = []string{"fake_profile", "inappropriate_content", "harassment", "spam", "underage", "other"}

func IsReportReason(reason string) bool {
	return slices.Contains(ReportReasons, reason)
}

type Report struct {
	ID          string    `json:"id" db:"id"`
	ReporterID  string    `json:"reporter_id" db:"reporter_id"`
	ReportedID  string    `json:"reported_id" db:"reported_id"`
	Reason      string    `json:"reason" db:"reason"`
	Description *string   `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
