package progression

import (
	"testing"
	"time"

	"flutterlearn-service/internal/models"
)

func progressWith(userID string, courseID string, moduleAttempts map[string][]models.QuizAttempt) *models.ParticipantProgress {
	p := models.NewParticipantProgress(userID)
	course := models.NewCourseProgress(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	for moduleID, attempts := range moduleAttempts {
		mp := models.NewModuleProgress()
		for _, a := range attempts {
			ApplyAttempt(mp, a)
		}
		course.Modules[moduleID] = mp
	}
	p.Courses[courseID] = course
	return p
}

func TestMergeLocalOnlyModule(t *testing.T) {
	// Scenario: local has attempt A1 for module M (score 80) not yet
	// synced; remote has no record for M.
	day := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	local := progressWith("u1", "flutter", map[string][]models.QuizAttempt{
		"m1": {attempt("A1", 80, day)},
	})
	remote := progressWith("u1", "flutter", map[string][]models.QuizAttempt{})

	merged := Merge(remote, local)

	mp, ok := merged.Courses["flutter"].Modules["m1"]
	if !ok {
		t.Fatal("Local-only module not adopted")
	}
	if len(mp.Attempts) != 1 || mp.Attempts[0].AttemptID != "A1" {
		t.Fatalf("Attempt A1 not intact: %+v", mp.Attempts)
	}
	if mp.BestScore != 80 {
		t.Errorf("Expected bestScore 80, got %d", mp.BestScore)
	}
}

func TestMergeUnionByAttemptID(t *testing.T) {
	day := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	remote := progressWith("u1", "flutter", map[string][]models.QuizAttempt{
		"m1": {attempt("A1", 60, day), attempt("A2", 75, day.Add(time.Hour))},
	})
	local := progressWith("u1", "flutter", map[string][]models.QuizAttempt{
		"m1": {attempt("A1", 60, day), attempt("A3", 90, day.Add(2 * time.Hour))},
	})

	remoteCount := len(remote.Courses["flutter"].Modules["m1"].Attempts)
	merged := Merge(remote, local)
	mp := merged.Courses["flutter"].Modules["m1"]

	if len(mp.Attempts) != 3 {
		t.Fatalf("Expected 3 attempts after union, got %d", len(mp.Attempts))
	}
	// Remote attempts keep their order and are never dropped.
	if len(mp.Attempts) < remoteCount {
		t.Fatal("Union reduced the remote attempt set")
	}
	if mp.Attempts[0].AttemptID != "A1" || mp.Attempts[1].AttemptID != "A2" || mp.Attempts[2].AttemptID != "A3" {
		t.Errorf("Unexpected attempt order: %v", []string{mp.Attempts[0].AttemptID, mp.Attempts[1].AttemptID, mp.Attempts[2].AttemptID})
	}
	if mp.BestScore != 90 {
		t.Errorf("Expected merged bestScore 90, got %d", mp.BestScore)
	}
	if mp.Status != models.ModuleCompleted {
		t.Errorf("Expected completed after merge, got %s", mp.Status)
	}
	if mp.TotalTimeSpent != 360 {
		t.Errorf("Expected time recomputed from merged attempts (360), got %d", mp.TotalTimeSpent)
	}
}

func TestMergeIdempotent(t *testing.T) {
	day := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	build := func() *models.ParticipantProgress {
		return progressWith("u1", "flutter", map[string][]models.QuizAttempt{
			"m1": {attempt("A1", 60, day), attempt("A2", 75, day)},
			"m2": {attempt("B1", 100, day)},
		})
	}

	merged := Merge(build(), build())

	m1 := merged.Courses["flutter"].Modules["m1"]
	if len(m1.Attempts) != 2 {
		t.Errorf("Self-merge duplicated attempts: %d", len(m1.Attempts))
	}
	if m1.BestScore != 75 {
		t.Errorf("Self-merge changed bestScore: %d", m1.BestScore)
	}
	m2 := merged.Courses["flutter"].Modules["m2"]
	if len(m2.Attempts) != 1 || m2.Status != models.ModulePerfect {
		t.Errorf("Self-merge altered m2: %d attempts, status %s", len(m2.Attempts), m2.Status)
	}
}

func TestMergeLocalOnlyCourse(t *testing.T) {
	day := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	local := progressWith("u1", "dart-basics", map[string][]models.QuizAttempt{
		"m1": {attempt("A1", 70, day)},
	})
	remote := models.NewParticipantProgress("u1")

	merged := Merge(remote, local)
	if _, ok := merged.Courses["dart-basics"]; !ok {
		t.Fatal("Local-only course not adopted")
	}
}

func TestMergeNilRemoteIsFirstSync(t *testing.T) {
	local := progressWith("u1", "flutter", map[string][]models.QuizAttempt{
		"m1": {attempt("A1", 50, time.Now())},
	})
	if merged := Merge(nil, local); merged != local {
		t.Error("Nil remote should degenerate to local")
	}
}

func TestMergeKeepsRemoteLatches(t *testing.T) {
	day := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	remote := progressWith("u1", "flutter", map[string][]models.QuizAttempt{
		"m1": {attempt("A1", 80, day)},
	})
	remoteCompleted := *remote.Courses["flutter"].Modules["m1"].CompletedAt

	local := progressWith("u1", "flutter", map[string][]models.QuizAttempt{
		"m1": {attempt("A2", 95, day.Add(48 * time.Hour))},
	})

	merged := Merge(remote, local)
	mp := merged.Courses["flutter"].Modules["m1"]
	if !mp.CompletedAt.Equal(remoteCompleted) {
		t.Errorf("Remote completedAt overwritten: %v", mp.CompletedAt)
	}
	if !mp.LastAttemptDate.Equal(day.Add(48 * time.Hour)) {
		t.Errorf("lastAttemptDate should advance to the newest attempt, got %v", mp.LastAttemptDate)
	}
}

func TestRecomputeStatsAfterMerge(t *testing.T) {
	day := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	p := progressWith("u1", "flutter", map[string][]models.QuizAttempt{
		"m1": {attempt("A1", 60, day), attempt("A2", 80, day)},
		"m2": {attempt("B1", 100, day)},
	})

	RecomputeStats(p, day)

	gs := p.GlobalStats
	if gs.TotalQuizzes != 3 {
		t.Errorf("Expected 3 quizzes, got %d", gs.TotalQuizzes)
	}
	if gs.AverageScore != 80 {
		t.Errorf("Expected average 80, got %f", gs.AverageScore)
	}
	if gs.ModulesCompleted != 2 {
		t.Errorf("Expected 2 modules completed, got %d", gs.ModulesCompleted)
	}
	if gs.PerfectScores != 1 {
		t.Errorf("Expected 1 perfect score, got %d", gs.PerfectScores)
	}
	if gs.TotalTimeSpent != 360 {
		t.Errorf("Expected 360s total, got %d", gs.TotalTimeSpent)
	}

	stats := p.Courses["flutter"].Stats
	if stats.OverallPercent != 100 {
		t.Errorf("Expected 100%% overall, got %f", stats.OverallPercent)
	}
}
