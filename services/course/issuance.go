package course

import (
	courseModels "elearn/models/course"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ArtifactRenderer produces the downloadable artifact for a certificate.
// The production implementation calls an external render service; tests
// plug in a stub.
type ArtifactRenderer interface {
	RenderCertificate(cert *courseModels.Certificate, courseTitle, learnerName string) (string, error)
}

// AwardBadge gives a catalog badge to an eligible learner for a course the
// instructor owns. Re-awarding the same badge is a no-op that returns the
// existing award.
func AwardBadge(db *gorm.DB, instructorID, courseID, learnerID, badgeID uint) (*courseModels.BadgeAward, error) {
	crs, err := loadCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(crs, instructorID); err != nil {
		return nil, err
	}

	var badge courseModels.Badge
	if err := db.Where("id = ? AND is_deleted = ?", badgeID, false).First(&badge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("badge %d: %w", badgeID, ErrNotFound)
		}
		return nil, fmt.Errorf("load badge: %w", ErrStorage)
	}

	eligible, err := IsEligible(db, learnerID, courseID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, fmt.Errorf("learner %d in course %d: %w", learnerID, courseID, ErrNotEligible)
	}

	var existing courseModels.BadgeAward
	err = db.Where("user_id = ? AND course_id = ? AND badge_id = ? AND is_deleted = ?", learnerID, courseID, badgeID, false).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load badge award: %w", ErrStorage)
	}

	award := courseModels.BadgeAward{UserID: learnerID, CourseID: courseID, BadgeID: badgeID}
	if err := db.Create(&award).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent award won the unique index, converge on it
			if err := db.Where("user_id = ? AND course_id = ? AND badge_id = ?", learnerID, courseID, badgeID).First(&award).Error; err != nil {
				return nil, fmt.Errorf("reload badge award: %w", ErrStorage)
			}
			return &award, nil
		}
		return nil, fmt.Errorf("create badge award: %w", ErrStorage)
	}

	if err := db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", learnerID, courseID, false).
		Update("badge_award_id", award.ID).Error; err != nil {
		return nil, fmt.Errorf("link badge to enrollment: %w", ErrStorage)
	}
	return &award, nil
}

// IssueCertificate creates the one immutable certificate for (learner,
// course). The composite unique index serializes concurrent issuance: the
// losing insert surfaces as ErrAlreadyIssued.
func IssueCertificate(db *gorm.DB, renderer ArtifactRenderer, instructorID, courseID, learnerID uint, finalScore int, competencies []courseModels.Competency) (*courseModels.Certificate, error) {
	crs, err := loadCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(crs, instructorID); err != nil {
		return nil, err
	}

	eligible, err := IsEligible(db, learnerID, courseID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, fmt.Errorf("learner %d in course %d: %w", learnerID, courseID, ErrNotEligible)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", learnerID, courseID, false).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("enrollment for learner %d in course %d: %w", learnerID, courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("load enrollment: %w", ErrStorage)
	}

	var existing courseModels.Certificate
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", learnerID, courseID, false).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("certificate %s exists for learner %d in course %d: %w", existing.CertificateNumber, learnerID, courseID, ErrAlreadyIssued)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load certificate: %w", ErrStorage)
	}

	rawCompetencies, err := json.Marshal(competencies)
	if err != nil {
		return nil, fmt.Errorf("encode competencies: %w", ErrStorage)
	}

	cert := courseModels.Certificate{
		UserID:                learnerID,
		CourseID:              courseID,
		EnrollmentID:          enrollment.ID,
		CertificateNumber:     uuid.NewString(),
		FinalScore:            finalScore,
		ValidatedCompetencies: datatypes.JSON(rawCompetencies),
		IssuedAt:              time.Now(),
	}

	// The unique index is the serialization point, so the insert happens
	// before the artifact render: a losing concurrent issuance never reaches
	// the external render service.
	if err := db.Create(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("learner %d in course %d: %w", learnerID, courseID, ErrAlreadyIssued)
		}
		return nil, fmt.Errorf("create certificate: %w", ErrStorage)
	}

	if err := db.Model(&courseModels.Enrollment{}).
		Where("id = ?", enrollment.ID).
		Update("certificate_id", cert.ID).Error; err != nil {
		return nil, fmt.Errorf("link certificate to enrollment: %w", ErrStorage)
	}

	// The issuance is durable at this point; a failed render leaves
	// ArtifactURL empty instead of undoing it. The artifact can be
	// regenerated from the certificate number later.
	if renderer != nil {
		var learner struct{ Name string }
		db.Table("users").Select("name").Where("id = ?", learnerID).Scan(&learner)

		artifactURL, err := renderer.RenderCertificate(&cert, crs.Title, learner.Name)
		if err == nil && artifactURL != "" {
			if err := db.Model(&courseModels.Certificate{}).
				Where("id = ?", cert.ID).
				Update("artifact_url", artifactURL).Error; err == nil {
				cert.ArtifactURL = artifactURL
			}
		}
	}
	return &cert, nil
}
