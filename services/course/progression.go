package course

import (
	"elearn/config"
	courseModels "elearn/models/course"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
)

// maxUpdateRetries bounds the optimistic-retry loop on concurrent
// enrollment updates. Step completion is a set-union so retrying converges;
// every lost race means another writer committed, so a writer can only be
// starved by that many concurrent completions.
const maxUpdateRetries = 8

// ProgressSnapshot is the externally visible progress state for one learner
// in one course
type ProgressSnapshot struct {
	LearnerID         uint       `json:"learner_id"`
	CourseID          uint       `json:"course_id"`
	CompletedSteps    []int      `json:"completed_steps"`
	TotalSteps        int        `json:"total_steps"`
	PercentComplete   int        `json:"percent_complete"`
	Terminated        bool       `json:"terminated"`
	LastActivityAt    *time.Time `json:"last_activity_at"`
	BadgeAwarded      bool       `json:"badge_awarded"`
	CertificateIssued bool       `json:"certificate_issued"`
}

// LearnerProgress is one roster row for the instructor's student view
type LearnerProgress struct {
	LearnerID         uint       `json:"learner_id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PercentComplete   int        `json:"percent_complete"`
	Terminated        bool       `json:"terminated"`
	BadgeAwarded      bool       `json:"badge_awarded"`
	CertificateIssued bool       `json:"certificate_issued"`
	LastActivityAt    *time.Time `json:"last_activity_at"`
}

// eligibilityThreshold returns the configured completion percentage gate
func eligibilityThreshold() int {
	if config.AppConfig == nil {
		return 80
	}
	return config.AppConfig.EligibilityThreshold
}

// visibleCourse loads a course a learner is allowed to interact with
func visibleCourse(db *gorm.DB, courseID uint) (*courseModels.Course, error) {
	var crs courseModels.Course
	err := db.Where("id = ? AND is_deleted = ? AND approved = ? AND public = ?", courseID, false, true, true).First(&crs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("load course: %w", ErrStorage)
	}
	return &crs, nil
}

func countSteps(db *gorm.DB, courseID uint) (int, error) {
	var total int64
	if err := db.Model(&courseModels.Step{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count steps: %w", ErrStorage)
	}
	return int(total), nil
}

func percentOf(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Enroll creates the enrollment row for (learner, course) if absent.
// Idempotent: an existing enrollment is returned as is.
func Enroll(db *gorm.DB, learnerID, courseID uint) (*courseModels.Enrollment, error) {
	if _, err := visibleCourse(db, courseID); err != nil {
		return nil, err
	}

	var enrollment courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", learnerID, courseID, false).First(&enrollment).Error
	if err == nil {
		return &enrollment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load enrollment: %w", ErrStorage)
	}

	enrollment = courseModels.Enrollment{UserID: learnerID, CourseID: courseID}
	enrollment.SetStepIndexes(nil)
	if err := db.Create(&enrollment).Error; err != nil {
		// Concurrent first interaction: the unique index won, re-read the row
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("user_id = ? AND course_id = ?", learnerID, courseID).First(&enrollment).Error; err != nil {
				return nil, fmt.Errorf("reload enrollment: %w", ErrStorage)
			}
			return &enrollment, nil
		}
		return nil, fmt.Errorf("create enrollment: %w", ErrStorage)
	}
	return &enrollment, nil
}

// MarkStepComplete adds a step to the learner's completed set and recomputes
// progress. The enrollment is created on first interaction. Re-marking an
// already-completed step is a no-op, not an error. Concurrent calls converge
// through the version-guarded update.
func MarkStepComplete(db *gorm.DB, learnerID, courseID uint, stepIndex int) (*ProgressSnapshot, error) {
	if _, err := visibleCourse(db, courseID); err != nil {
		return nil, err
	}

	totalSteps, err := countSteps(db, courseID)
	if err != nil {
		return nil, err
	}
	if stepIndex < 0 || stepIndex >= totalSteps {
		return nil, fmt.Errorf("step index %d out of range [0,%d): %w", stepIndex, totalSteps, ErrNotFound)
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		enrollment, err := Enroll(db, learnerID, courseID)
		if err != nil {
			return nil, err
		}

		if enrollment.HasStep(stepIndex) {
			return snapshotOf(enrollment, totalSteps), nil
		}

		enrollment.SetStepIndexes(append(enrollment.StepIndexes(), stepIndex))
		completed := len(enrollment.StepIndexes())
		now := time.Now()

		res := db.Model(&courseModels.Enrollment{}).
			Where("id = ? AND version = ?", enrollment.ID, enrollment.Version).
			Updates(map[string]interface{}{
				"completed_steps":  enrollment.CompletedSteps,
				"percent_complete": percentOf(completed, totalSteps),
				"terminated":       completed == totalSteps,
				"last_activity_at": now,
				"version":          enrollment.Version + 1,
			})
		if res.Error != nil {
			return nil, fmt.Errorf("update enrollment: %w", ErrStorage)
		}
		if res.RowsAffected == 1 {
			enrollment.PercentComplete = percentOf(completed, totalSteps)
			enrollment.Terminated = completed == totalSteps
			enrollment.LastActivityAt = &now
			enrollment.Version++
			return snapshotOf(enrollment, totalSteps), nil
		}
		// Lost the race against a concurrent completion, retry on fresh state
	}
	return nil, fmt.Errorf("enrollment update contention: %w", ErrStorage)
}

// GetProgress returns the learner's snapshot, or a zero-state snapshot when
// no enrollment exists yet. Only an unknown course fails.
func GetProgress(db *gorm.DB, learnerID, courseID uint) (*ProgressSnapshot, error) {
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("load course: %w", ErrStorage)
	}

	totalSteps, err := countSteps(db, courseID)
	if err != nil {
		return nil, err
	}

	var enrollment courseModels.Enrollment
	err = db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", learnerID, courseID, false).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ProgressSnapshot{
			LearnerID:      learnerID,
			CourseID:       courseID,
			CompletedSteps: []int{},
			TotalSteps:     totalSteps,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load enrollment: %w", ErrStorage)
	}
	return snapshotOf(&enrollment, totalSteps), nil
}

// IsEligible reports whether the learner may receive a badge or certificate:
// full completion, or completion at or above the configured threshold
func IsEligible(db *gorm.DB, learnerID, courseID uint) (bool, error) {
	snapshot, err := GetProgress(db, learnerID, courseID)
	if err != nil {
		return false, err
	}
	return snapshot.Terminated || snapshot.PercentComplete >= eligibilityThreshold(), nil
}

// ListLearners returns a progress row for every learner enrolled in the
// course. Owner-only; pagination and completion filtering are applied by the
// API layer on top of this set.
func ListLearners(db *gorm.DB, instructorID, courseID uint) ([]LearnerProgress, error) {
	crs, err := loadCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if crs.InstructorID != instructorID {
		return nil, fmt.Errorf("course %d is not owned by instructor %d: %w", courseID, instructorID, ErrForbidden)
	}

	var enrollments []courseModels.Enrollment
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("created_at asc").Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("load enrollments: %w", ErrStorage)
	}

	roster := make([]LearnerProgress, 0, len(enrollments))
	for _, enrollment := range enrollments {
		row := LearnerProgress{
			LearnerID:         enrollment.UserID,
			PercentComplete:   enrollment.PercentComplete,
			Terminated:        enrollment.Terminated,
			BadgeAwarded:      enrollment.BadgeAwardID != nil,
			CertificateIssued: enrollment.CertificateID != nil,
			LastActivityAt:    enrollment.LastActivityAt,
		}
		var learner struct {
			Name  string
			Email string
		}
		if err := db.Table("users").Select("name, email").Where("id = ?", enrollment.UserID).Scan(&learner).Error; err == nil {
			row.Name = learner.Name
			row.Email = learner.Email
		}
		roster = append(roster, row)
	}
	return roster, nil
}

func snapshotOf(enrollment *courseModels.Enrollment, totalSteps int) *ProgressSnapshot {
	return &ProgressSnapshot{
		LearnerID:         enrollment.UserID,
		CourseID:          enrollment.CourseID,
		CompletedSteps:    enrollment.StepIndexes(),
		TotalSteps:        totalSteps,
		PercentComplete:   enrollment.PercentComplete,
		Terminated:        enrollment.Terminated,
		LastActivityAt:    enrollment.LastActivityAt,
		BadgeAwarded:      enrollment.BadgeAwardID != nil,
		CertificateIssued: enrollment.CertificateID != nil,
	}
}
