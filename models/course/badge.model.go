package course

import "gorm.io/gorm"

// Badge levels. Kept in French to match the published API contract.
const (
	BadgeBronze  = "bronze"
	BadgeSilver  = "argent"
	BadgeGold    = "or"
	BadgePlatine = "platine"
)

// Badge is a catalog entity independent of any course. An instructor picks
// one to award to a learner for a specific course.
type Badge struct {
	gorm.Model
	Name        string `json:"name"`
	Level       string `json:"level" gorm:"default:'bronze'"` // bronze, argent, or, platine
	Description string `json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}

// BadgeAward links a badge to a learner for a course. The composite unique
// index makes re-awarding the same badge a detectable no-op.
type BadgeAward struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_award_user_course_badge"`
	CourseID  uint `json:"course_id" gorm:"index;not null;uniqueIndex:idx_award_user_course_badge"`
	BadgeID   uint `json:"badge_id" gorm:"not null;uniqueIndex:idx_award_user_course_badge"`
	IsDeleted bool `gorm:"default:false"`
}
