package models

import "time"

// Complaint фіксує скаргу одного співрозмовника на іншого.
type Complaint struct {
	ComplaintID string    `gorm:"type:uuid;primaryKey"`
	ReporterID  string    `gorm:"type:uuid;not null"`
	TargetID    string    `gorm:"type:uuid;not null;index:idx_complaints_target_time"`
	ChatID      string    `gorm:"type:uuid"`
	Reason      string    // "Low", "Medium", "Critical"
	Weight      int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;index:idx_complaints_target_time"`
}
