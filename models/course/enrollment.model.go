package course

import (
	"encoding/json"
	"sort"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment tracks a learner's progress through a course. One row per
// (user, course); created implicitly on the first progression action.
// CompletedSteps holds a sorted JSON array of step order indexes with set
// semantics. Version guards concurrent read-modify-write updates.
type Enrollment struct {
	gorm.Model
	UserID          uint           `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	CourseID        uint           `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	CompletedSteps  datatypes.JSON `json:"completed_steps"`
	PercentComplete int            `json:"percent_complete" gorm:"default:0"` // 0-100
	Terminated      bool           `json:"terminated" gorm:"default:false"`
	LastActivityAt  *time.Time     `json:"last_activity_at"`
	BadgeAwardID    *uint          `json:"badge_award_id"`
	CertificateID   *uint          `json:"certificate_id"`
	Version         int            `json:"-" gorm:"default:0"`
	IsDeleted       bool           `gorm:"default:false"`
}

// StepIndexes decodes the completed-step set. A nil or empty column decodes
// to an empty slice.
func (e *Enrollment) StepIndexes() []int {
	if len(e.CompletedSteps) == 0 {
		return []int{}
	}
	var indexes []int
	if err := json.Unmarshal(e.CompletedSteps, &indexes); err != nil {
		return []int{}
	}
	return indexes
}

// SetStepIndexes stores a step-index set, sorted and deduplicated
func (e *Enrollment) SetStepIndexes(indexes []int) {
	seen := make(map[int]bool, len(indexes))
	unique := make([]int, 0, len(indexes))
	for _, idx := range indexes {
		if !seen[idx] {
			seen[idx] = true
			unique = append(unique, idx)
		}
	}
	sort.Ints(unique)
	raw, _ := json.Marshal(unique)
	e.CompletedSteps = datatypes.JSON(raw)
}

// HasStep reports whether a step order index is in the completed set
func (e *Enrollment) HasStep(index int) bool {
	for _, idx := range e.StepIndexes() {
		if idx == index {
			return true
		}
	}
	return false
}
