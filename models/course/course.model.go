package course

import (
	"time"

	"gorm.io/gorm"
)

// Moderation statuses
const (
	ModerationPending  = "PENDING"
	ModerationApproved = "APPROVED"
	ModerationRejected = "REJECTED"
)

// Course represents a learning course authored by an instructor.
// A course is visible to learners only when Approved AND Public.
type Course struct {
	gorm.Model
	Title            string     `json:"title"`
	Description      string     `json:"description" gorm:"type:text"`
	InstructorID     uint       `json:"instructor_id" gorm:"index;not null"`
	Category         string     `json:"category"`
	Level            string     `json:"level"`
	Language         string     `json:"language"`
	ModerationStatus string     `json:"moderation_status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	Approved         bool       `json:"approved" gorm:"default:false"`
	Public           bool       `json:"public" gorm:"default:false"`
	RejectionReason  string     `json:"rejection_reason"`
	ReviewedBy       *uint      `json:"reviewed_by"`
	ReviewedAt       *time.Time `json:"reviewed_at"`
	IsDeleted        bool       `gorm:"default:false"`
}
