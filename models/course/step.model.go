package course

import "gorm.io/gorm"

// Step content types
const (
	ContentText     = "TEXT"
	ContentVideo    = "VIDEO"
	ContentAudio    = "AUDIO"
	ContentImage    = "IMAGE"
	ContentDocument = "DOCUMENT"
)

// Step represents an ordered, atomic unit of course content. OrderIndex is
// 0-based and contiguous within a course; steps are replaced wholesale when
// the instructor updates course content.
type Step struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_course_order"`
	OrderIndex      int    `json:"order_index" gorm:"not null;uniqueIndex:idx_course_order"`
	Title           string `json:"title"`
	ContentType     string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO, AUDIO, IMAGE, DOCUMENT
	Content         string `json:"content" gorm:"type:text"`           // text body or asset URL
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	IsDeleted       bool   `gorm:"default:false"`
}
