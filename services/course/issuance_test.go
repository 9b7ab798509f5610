package course

import (
	"elearn/models"
	courseModels "elearn/models/course"
	"errors"
	"fmt"
	"testing"
)

type stubRenderer struct {
	calls int
}

func (r *stubRenderer) RenderCertificate(cert *courseModels.Certificate, courseTitle, learnerName string) (string, error) {
	r.calls++
	return fmt.Sprintf("/certificates/%s.pdf", cert.CertificateNumber), nil
}

type failingRenderer struct {
	calls int
}

func (r *failingRenderer) RenderCertificate(cert *courseModels.Certificate, courseTitle, learnerName string) (string, error) {
	r.calls++
	return "", errors.New("render service unavailable")
}

func TestAwardBadge_RequiresEligibility(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 5, true, true)
	badge := seedBadge(t, db, "Finisher", courseModels.BadgeBronze)

	completeSteps(t, db, learner.ID, crs.ID, 0, 1, 2) // 60%

	if _, err := AwardBadge(db, instructor.ID, crs.ID, learner.ID, badge.ID); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible at 60%%, got %v", err)
	}
}

func TestAwardBadge_AtThresholdAndIdempotent(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 5, true, true)
	badge := seedBadge(t, db, "Finisher", courseModels.BadgeSilver)

	completeSteps(t, db, learner.ID, crs.ID, 0, 1, 2, 3) // 80%

	first, err := AwardBadge(db, instructor.ID, crs.ID, learner.ID, badge.ID)
	if err != nil {
		t.Fatalf("award at 80%%: %v", err)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", learner.ID, crs.ID).First(&enrollment).Error; err != nil {
		t.Fatalf("load enrollment: %v", err)
	}
	if enrollment.BadgeAwardID == nil || *enrollment.BadgeAwardID != first.ID {
		t.Fatalf("expected enrollment linked to award %d, got %v", first.ID, enrollment.BadgeAwardID)
	}

	second, err := AwardBadge(db, instructor.ID, crs.ID, learner.ID, badge.ID)
	if err != nil {
		t.Fatalf("re-award must be a no-op, got %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same award row, got %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&courseModels.BadgeAward{}).Where("user_id = ? AND course_id = ?", learner.ID, crs.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one award row, got %d", count)
	}
}

func TestAwardBadge_NonOwner(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	other := seedUser(t, db, "other", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 2, true, true)
	badge := seedBadge(t, db, "Finisher", courseModels.BadgeBronze)

	completeSteps(t, db, learner.ID, crs.ID, 0, 1)

	if _, err := AwardBadge(db, other.ID, crs.ID, learner.ID, badge.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAwardBadge_UnknownBadge(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 2, true, true)

	completeSteps(t, db, learner.ID, crs.ID, 0, 1)

	if _, err := AwardBadge(db, instructor.ID, crs.ID, learner.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown badge, got %v", err)
	}
}

func TestIssueCertificate_OnceOnly(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 5, true, true)

	completeSteps(t, db, learner.ID, crs.ID, 0, 1, 2, 3) // 80%

	renderer := &stubRenderer{}
	competencies := []courseModels.Competency{
		{Name: "Fundamentals", Level: "advanced"},
		{Name: "Practice", Level: "intermediate"},
	}

	cert, err := IssueCertificate(db, renderer, instructor.ID, crs.ID, learner.ID, 92, competencies)
	if err != nil {
		t.Fatalf("issue at 80%%: %v", err)
	}
	if cert.FinalScore != 92 {
		t.Fatalf("expected final score 92, got %d", cert.FinalScore)
	}
	if cert.ArtifactURL == "" {
		t.Fatalf("expected artifact URL from the renderer")
	}
	if renderer.calls != 1 {
		t.Fatalf("expected one render call, got %d", renderer.calls)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", learner.ID, crs.ID).First(&enrollment).Error; err != nil {
		t.Fatalf("load enrollment: %v", err)
	}
	if enrollment.CertificateID == nil || *enrollment.CertificateID != cert.ID {
		t.Fatalf("expected enrollment linked to certificate %d, got %v", cert.ID, enrollment.CertificateID)
	}

	if _, err := IssueCertificate(db, renderer, instructor.ID, crs.ID, learner.ID, 95, competencies); !errors.Is(err, ErrAlreadyIssued) {
		t.Fatalf("expected ErrAlreadyIssued on second issue, got %v", err)
	}
	if renderer.calls != 1 {
		t.Fatalf("duplicate issuance must not reach the renderer, got %d calls", renderer.calls)
	}

	var count int64
	db.Model(&courseModels.Certificate{}).Where("user_id = ? AND course_id = ?", learner.ID, crs.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one certificate, got %d", count)
	}
}

func TestIssueCertificate_RenderFailureKeepsIssuance(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 5, true, true)

	completeSteps(t, db, learner.ID, crs.ID, 0, 1, 2, 3)

	renderer := &failingRenderer{}
	cert, err := IssueCertificate(db, renderer, instructor.ID, crs.ID, learner.ID, 85, nil)
	if err != nil {
		t.Fatalf("a render failure must not fail the issuance: %v", err)
	}
	if cert.ArtifactURL != "" {
		t.Fatalf("expected empty artifact URL after a render failure, got %q", cert.ArtifactURL)
	}
	if renderer.calls != 1 {
		t.Fatalf("expected one render attempt, got %d", renderer.calls)
	}

	// The row is durable regardless of the artifact
	if _, err := IssueCertificate(db, renderer, instructor.ID, crs.ID, learner.ID, 85, nil); !errors.Is(err, ErrAlreadyIssued) {
		t.Fatalf("expected ErrAlreadyIssued after the failed-render issuance, got %v", err)
	}
}

func TestIssueCertificate_RequiresEligibility(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 5, true, true)

	completeSteps(t, db, learner.ID, crs.ID, 0) // 20%

	if _, err := IssueCertificate(db, &stubRenderer{}, instructor.ID, crs.ID, learner.ID, 50, nil); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("expected ErrNotEligible at 20%%, got %v", err)
	}
}

func TestIssueCertificate_NonOwner(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	other := seedUser(t, db, "other", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 2, true, true)

	completeSteps(t, db, learner.ID, crs.ID, 0, 1)

	if _, err := IssueCertificate(db, &stubRenderer{}, other.ID, crs.ID, learner.ID, 90, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
