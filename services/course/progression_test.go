package course

import (
	"elearn/models"
	courseModels "elearn/models/course"
	"errors"
	"sync"
	"testing"
)

func TestMarkStepComplete_ProgressAccumulates(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 5, true, true)

	snapshot := completeSteps(t, db, learner.ID, crs.ID, 0, 1, 2)
	if snapshot.PercentComplete != 60 {
		t.Fatalf("expected 60%% after 3 of 5 steps, got %d", snapshot.PercentComplete)
	}
	if snapshot.Terminated {
		t.Fatalf("expected terminated=false at 60%%")
	}
	eligible, err := IsEligible(db, learner.ID, crs.ID)
	if err != nil {
		t.Fatalf("eligibility check: %v", err)
	}
	if eligible {
		t.Fatalf("expected not eligible at 60%%")
	}

	snapshot = completeSteps(t, db, learner.ID, crs.ID, 3)
	if snapshot.PercentComplete != 80 {
		t.Fatalf("expected 80%% after 4 of 5 steps, got %d", snapshot.PercentComplete)
	}
	if snapshot.Terminated {
		t.Fatalf("expected terminated=false at 80%%")
	}
	eligible, err = IsEligible(db, learner.ID, crs.ID)
	if err != nil {
		t.Fatalf("eligibility check: %v", err)
	}
	if !eligible {
		t.Fatalf("expected eligible at 80%%")
	}

	snapshot = completeSteps(t, db, learner.ID, crs.ID, 4)
	if snapshot.PercentComplete != 100 {
		t.Fatalf("expected 100%% after all steps, got %d", snapshot.PercentComplete)
	}
	if !snapshot.Terminated {
		t.Fatalf("expected terminated=true at 100%%")
	}
}

func TestMarkStepComplete_AnyOrderReaches100(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 4, true, true)

	snapshot := completeSteps(t, db, learner.ID, crs.ID, 3, 0, 2, 1)
	if snapshot.PercentComplete != 100 || !snapshot.Terminated {
		t.Fatalf("expected 100%%/terminated after all steps in shuffled order, got %d/%v",
			snapshot.PercentComplete, snapshot.Terminated)
	}
}

func TestMarkStepComplete_ConcurrentCallsConverge(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 8, true, true)

	// Every step completed from its own goroutine; the version-guarded
	// update must make the set unions converge without losing any step.
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if _, err := MarkStepComplete(db, learner.ID, crs.ID, idx); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent step completion: %v", err)
	}

	snapshot, err := GetProgress(db, learner.ID, crs.ID)
	if err != nil {
		t.Fatalf("progress after concurrent completions: %v", err)
	}
	if snapshot.PercentComplete != 100 || !snapshot.Terminated {
		t.Fatalf("expected 100%%/terminated after all steps completed concurrently, got %d/%v",
			snapshot.PercentComplete, snapshot.Terminated)
	}
	if len(snapshot.CompletedSteps) != 8 {
		t.Fatalf("expected all 8 steps in the completed set, got %v", snapshot.CompletedSteps)
	}

	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND course_id = ?", learner.ID, crs.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single enrollment row, got %d", count)
	}
}

func TestMarkStepComplete_Idempotent(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 5, true, true)

	first := completeSteps(t, db, learner.ID, crs.ID, 2)
	second := completeSteps(t, db, learner.ID, crs.ID, 2)

	if first.PercentComplete != second.PercentComplete {
		t.Fatalf("re-marking a step changed progress: %d vs %d", first.PercentComplete, second.PercentComplete)
	}
	if len(second.CompletedSteps) != 1 {
		t.Fatalf("expected one completed step, got %v", second.CompletedSteps)
	}
}

func TestMarkStepComplete_StepOutOfRange(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 3, true, true)

	if _, err := MarkStepComplete(db, learner.ID, crs.ID, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for step index 3 of 3, got %v", err)
	}
	if _, err := MarkStepComplete(db, learner.ID, crs.ID, -1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for negative step index, got %v", err)
	}
}

func TestMarkStepComplete_UnknownCourse(t *testing.T) {
	db := newTestDB(t)
	learner := seedUser(t, db, "learner", models.RoleUser)

	if _, err := MarkStepComplete(db, learner.ID, 9999, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown course, got %v", err)
	}
}

func TestMarkStepComplete_HiddenCourse(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)

	// Approved but unpublished: not visible to learners
	crs := seedCourse(t, db, instructor.ID, 3, true, false)

	if _, err := MarkStepComplete(db, learner.ID, crs.ID, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for hidden course, got %v", err)
	}
}

func TestGetProgress_ZeroStateBeforeEnrollment(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 5, true, true)

	snapshot, err := GetProgress(db, learner.ID, crs.ID)
	if err != nil {
		t.Fatalf("zero-state progress should never fail: %v", err)
	}
	if snapshot.PercentComplete != 0 || snapshot.Terminated || len(snapshot.CompletedSteps) != 0 {
		t.Fatalf("expected zero-state snapshot, got %+v", snapshot)
	}
	if snapshot.TotalSteps != 5 {
		t.Fatalf("expected 5 total steps, got %d", snapshot.TotalSteps)
	}
}

func TestGetProgress_UnknownCourse(t *testing.T) {
	db := newTestDB(t)
	learner := seedUser(t, db, "learner", models.RoleUser)

	if _, err := GetProgress(db, learner.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown course, got %v", err)
	}
}

func TestIsEligible_MonotonicInProgress(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 10, true, true)

	wasEligible := false
	for i := 0; i < 10; i++ {
		completeSteps(t, db, learner.ID, crs.ID, i)
		eligible, err := IsEligible(db, learner.ID, crs.ID)
		if err != nil {
			t.Fatalf("eligibility check at step %d: %v", i, err)
		}
		if wasEligible && !eligible {
			t.Fatalf("eligibility dropped after step %d", i)
		}
		wasEligible = eligible
	}
	if !wasEligible {
		t.Fatalf("expected eligible at full completion")
	}
}

func TestEnroll_Idempotent(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 3, true, true)

	first, err := Enroll(db, learner.ID, crs.ID)
	if err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	second, err := Enroll(db, learner.ID, crs.ID)
	if err != nil {
		t.Fatalf("second enroll: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same enrollment row, got %d and %d", first.ID, second.ID)
	}
}

func TestListLearners_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	instructor := seedUser(t, db, "instructor", models.RoleInstructor)
	other := seedUser(t, db, "other", models.RoleInstructor)
	learner := seedUser(t, db, "learner", models.RoleUser)
	crs := seedCourse(t, db, instructor.ID, 2, true, true)

	completeSteps(t, db, learner.ID, crs.ID, 0)

	if _, err := ListLearners(db, other.ID, crs.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	roster, err := ListLearners(db, instructor.ID, crs.ID)
	if err != nil {
		t.Fatalf("owner roster: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected one roster row, got %d", len(roster))
	}
	if roster[0].LearnerID != learner.ID || roster[0].PercentComplete != 50 {
		t.Fatalf("unexpected roster row: %+v", roster[0])
	}
	if roster[0].Name != "learner" {
		t.Fatalf("expected learner name on roster row, got %q", roster[0].Name)
	}
}
