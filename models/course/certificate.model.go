package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Competency is one validated skill recorded on a certificate
type Competency struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// Certificate represents an issued certificate for course completion.
// Issued exactly once per (user, course) - the composite unique index is the
// serialization point for concurrent issuance - and immutable thereafter.
type Certificate struct {
	gorm.Model
	UserID                uint           `json:"user_id" gorm:"index;not null;uniqueIndex:idx_cert_user_course"`
	CourseID              uint           `json:"course_id" gorm:"index;not null;uniqueIndex:idx_cert_user_course"`
	EnrollmentID          uint           `json:"enrollment_id" gorm:"index;not null"`
	CertificateNumber     string         `json:"certificate_number" gorm:"unique"`
	FinalScore            int            `json:"final_score"` // 0-100
	ValidatedCompetencies datatypes.JSON `json:"validated_competencies"`
	ArtifactURL           string         `json:"artifact_url"`
	IssuedAt              time.Time      `json:"issued_at"`
	IsDeleted             bool           `gorm:"default:false"`
}
