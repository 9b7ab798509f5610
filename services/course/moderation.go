package course

import (
	"elearn/config"
	courseModels "elearn/models/course"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CourseEdit carries an instructor's content changes. Nil fields are left
// untouched; Steps, when set, replaces the ordered step list wholesale.
type CourseEdit struct {
	Title       *string
	Description *string
	Category    *string
	Level       *string
	Language    *string
	Steps       []StepInput
}

// StepInput is one step in a replacement step list, in order
type StepInput struct {
	Title           string `json:"title"`
	ContentType     string `json:"content_type"`
	Content         string `json:"content"`
	DurationMinutes int    `json:"duration_minutes"`
}

func loadCourse(db *gorm.DB, courseID uint) (*courseModels.Course, error) {
	var crs courseModels.Course
	err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("load course: %w", ErrStorage)
	}
	return &crs, nil
}

func requireOwner(crs *courseModels.Course, instructorID uint) error {
	if crs.InstructorID != instructorID {
		return fmt.Errorf("course %d is not owned by instructor %d: %w", crs.ID, instructorID, ErrForbidden)
	}
	return nil
}

// CreateCourse registers a new course for the instructor. New courses start
// unapproved, unpublished, awaiting review.
func CreateCourse(db *gorm.DB, instructorID uint, edit CourseEdit) (*courseModels.Course, error) {
	crs := courseModels.Course{
		InstructorID:     instructorID,
		ModerationStatus: courseModels.ModerationPending,
	}
	applyEdit(&crs, edit)

	if err := db.Create(&crs).Error; err != nil {
		return nil, fmt.Errorf("create course: %w", ErrStorage)
	}
	if err := replaceSteps(db, crs.ID, edit.Steps); err != nil {
		return nil, err
	}
	return &crs, nil
}

// UpdateCourse applies a content edit. Any accepted edit sends the course
// back through review: moderation status returns to PENDING and both the
// approved and public flags drop, whatever the previous state was.
func UpdateCourse(db *gorm.DB, instructorID, courseID uint, edit CourseEdit) (*courseModels.Course, error) {
	crs, err := loadCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(crs, instructorID); err != nil {
		return nil, err
	}

	applyEdit(crs, edit)
	crs.ModerationStatus = courseModels.ModerationPending
	crs.Approved = false
	crs.Public = false
	crs.RejectionReason = ""
	crs.ReviewedBy = nil
	crs.ReviewedAt = nil

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(crs).Error; err != nil {
			return fmt.Errorf("save course: %w", ErrStorage)
		}
		if edit.Steps != nil {
			if err := replaceSteps(tx, crs.ID, edit.Steps); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return crs, nil
}

// SubmitForReview puts the course back in the moderation queue
func SubmitForReview(db *gorm.DB, instructorID, courseID uint) (*courseModels.Course, error) {
	crs, err := loadCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(crs, instructorID); err != nil {
		return nil, err
	}

	crs.ModerationStatus = courseModels.ModerationPending
	crs.Approved = false
	crs.Public = false
	if err := db.Save(crs).Error; err != nil {
		return nil, fmt.Errorf("save course: %w", ErrStorage)
	}
	return crs, nil
}

// Approve moves a PENDING course to APPROVED. Publication stays a separate
// instructor action unless AUTO_PUBLISH_ON_APPROVE is set. The transition
// runs as a guarded update so two concurrent reviews cannot both succeed.
func Approve(db *gorm.DB, reviewerID, courseID uint) (*courseModels.Course, error) {
	crs, err := loadCourse(db, courseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"moderation_status": courseModels.ModerationApproved,
		"approved":          true,
		"rejection_reason":  "",
		"reviewed_by":       reviewerID,
		"reviewed_at":       now,
	}
	if config.AppConfig != nil && config.AppConfig.AutoPublishOnApprove {
		updates["public"] = true
	}

	res := db.Model(&courseModels.Course{}).
		Where("id = ? AND moderation_status = ?", courseID, courseModels.ModerationPending).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("approve course: %w", ErrStorage)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("course %d is %s, not PENDING: %w", courseID, crs.ModerationStatus, ErrInvalidState)
	}
	return loadCourse(db, courseID)
}

// Reject moves a PENDING course to REJECTED with a reason. A rejected course
// re-enters the queue only through a new content edit.
func Reject(db *gorm.DB, reviewerID, courseID uint, reason string) (*courseModels.Course, error) {
	crs, err := loadCourse(db, courseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := db.Model(&courseModels.Course{}).
		Where("id = ? AND moderation_status = ?", courseID, courseModels.ModerationPending).
		Updates(map[string]interface{}{
			"moderation_status": courseModels.ModerationRejected,
			"approved":          false,
			"public":            false,
			"rejection_reason":  reason,
			"reviewed_by":       reviewerID,
			"reviewed_at":       now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("reject course: %w", ErrStorage)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("course %d is %s, not PENDING: %w", courseID, crs.ModerationStatus, ErrInvalidState)
	}
	return loadCourse(db, courseID)
}

// SetPublished toggles learner visibility of an approved course. Ownership
// is checked before state. Unpublishing never touches moderation fields.
func SetPublished(db *gorm.DB, instructorID, courseID uint, public bool) (*courseModels.Course, error) {
	crs, err := loadCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(crs, instructorID); err != nil {
		return nil, err
	}
	if !crs.Approved {
		return nil, fmt.Errorf("course %d: %w", courseID, ErrNotApproved)
	}

	res := db.Model(&courseModels.Course{}).
		Where("id = ? AND approved = ?", courseID, true).
		Update("public", public)
	if res.Error != nil {
		return nil, fmt.Errorf("publish course: %w", ErrStorage)
	}
	if res.RowsAffected == 0 {
		// Approval was withdrawn between the check and the write
		return nil, fmt.Errorf("course %d: %w", courseID, ErrNotApproved)
	}
	crs.Public = public
	return crs, nil
}

func applyEdit(crs *courseModels.Course, edit CourseEdit) {
	if edit.Title != nil {
		crs.Title = *edit.Title
	}
	if edit.Description != nil {
		crs.Description = *edit.Description
	}
	if edit.Category != nil {
		crs.Category = *edit.Category
	}
	if edit.Level != nil {
		crs.Level = *edit.Level
	}
	if edit.Language != nil {
		crs.Language = *edit.Language
	}
}

// replaceSteps swaps the ordered step list. Order indexes are assigned from
// the input order, contiguous from 0.
func replaceSteps(db *gorm.DB, courseID uint, steps []StepInput) error {
	if steps == nil {
		return nil
	}
	if err := db.Unscoped().Where("course_id = ?", courseID).Delete(&courseModels.Step{}).Error; err != nil {
		return fmt.Errorf("clear steps: %w", ErrStorage)
	}
	for i, in := range steps {
		contentType := in.ContentType
		if contentType == "" {
			contentType = courseModels.ContentText
		}
		step := courseModels.Step{
			CourseID:        courseID,
			OrderIndex:      i,
			Title:           in.Title,
			ContentType:     contentType,
			Content:         in.Content,
			DurationMinutes: in.DurationMinutes,
		}
		if err := db.Create(&step).Error; err != nil {
			return fmt.Errorf("create step: %w", ErrStorage)
		}
	}
	return nil
}
