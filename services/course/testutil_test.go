package course

import (
	"elearn/config"
	"elearn/database"
	"elearn/models"
	courseModels "elearn/models/course"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// Capped at one connection so every query sees the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{EligibilityThreshold: 80}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@test.test", name),
		Role:     role,
		Password: "hashed",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return &user
}

// seedCourse creates a course with numSteps ordered steps
func seedCourse(t *testing.T, db *gorm.DB, instructorID uint, numSteps int, approved, public bool) *courseModels.Course {
	t.Helper()
	status := courseModels.ModerationPending
	if approved {
		status = courseModels.ModerationApproved
	}
	crs := courseModels.Course{
		Title:            "Test course",
		InstructorID:     instructorID,
		ModerationStatus: status,
		Approved:         approved,
		Public:           public,
	}
	if err := db.Create(&crs).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	for i := 0; i < numSteps; i++ {
		step := courseModels.Step{
			CourseID:        crs.ID,
			OrderIndex:      i,
			Title:           fmt.Sprintf("Step %d", i),
			ContentType:     courseModels.ContentText,
			Content:         "body",
			DurationMinutes: 10,
		}
		if err := db.Create(&step).Error; err != nil {
			t.Fatalf("seed step %d: %v", i, err)
		}
	}
	return &crs
}

func seedBadge(t *testing.T, db *gorm.DB, name, level string) *courseModels.Badge {
	t.Helper()
	badge := courseModels.Badge{Name: name, Level: level}
	if err := db.Create(&badge).Error; err != nil {
		t.Fatalf("seed badge: %v", err)
	}
	return &badge
}

// completeSteps marks the given step indexes done for the learner
func completeSteps(t *testing.T, db *gorm.DB, learnerID, courseID uint, indexes ...int) *ProgressSnapshot {
	t.Helper()
	var snapshot *ProgressSnapshot
	var err error
	for _, idx := range indexes {
		snapshot, err = MarkStepComplete(db, learnerID, courseID, idx)
		if err != nil {
			t.Fatalf("mark step %d complete: %v", idx, err)
		}
	}
	return snapshot
}
