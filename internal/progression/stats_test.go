package progression

import (
	"testing"
	"time"

	"flutterlearn-service/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 14, 30, 0, 0, time.UTC)
}

func TestCurrentStreak(t *testing.T) {
	testCases := []struct {
		name     string
		dates    []time.Time
		expected int
	}{
		{"no attempts", nil, 0},
		{"single day", []time.Time{day(2025, 3, 10)}, 1},
		{"three consecutive days", []time.Time{
			day(2025, 3, 8), day(2025, 3, 9), day(2025, 3, 10),
		}, 3},
		{"gap breaks the run", []time.Time{
			day(2025, 3, 5), day(2025, 3, 9), day(2025, 3, 10),
		}, 2},
		{"multiple attempts same day count once", []time.Time{
			day(2025, 3, 9), day(2025, 3, 9), day(2025, 3, 10),
		}, 2},
		{"unsorted input", []time.Time{
			day(2025, 3, 10), day(2025, 3, 8), day(2025, 3, 9),
		}, 3},
		{"old history only counts latest run", []time.Time{
			day(2025, 1, 1), day(2025, 1, 2), day(2025, 3, 10),
		}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CurrentStreak(tc.dates); got != tc.expected {
				t.Errorf("Expected streak %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestLongestStreakMonotonic(t *testing.T) {
	p := models.NewParticipantProgress("u1")
	course := models.NewCourseProgress(day(2025, 3, 1))
	mp := models.NewModuleProgress()
	for i := 0; i < 5; i++ {
		ApplyAttempt(mp, attempt(string(rune('a'+i)), 80, day(2025, 3, 1+i)))
	}
	course.Modules["m1"] = mp
	p.Courses["flutter"] = course

	RecomputeStats(p, day(2025, 3, 5))
	if p.GlobalStats.CurrentStreak != 5 || p.GlobalStats.LongestStreak != 5 {
		t.Fatalf("Expected 5/5 streak, got %d/%d",
			p.GlobalStats.CurrentStreak, p.GlobalStats.LongestStreak)
	}

	// A much later attempt resets the current run but never the longest.
	ApplyAttempt(mp, attempt("z", 80, day(2025, 6, 1)))
	RecomputeStats(p, day(2025, 6, 1))
	if p.GlobalStats.CurrentStreak != 1 {
		t.Errorf("Expected current streak 1, got %d", p.GlobalStats.CurrentStreak)
	}
	if p.GlobalStats.LongestStreak != 5 {
		t.Errorf("Longest streak regressed: %d", p.GlobalStats.LongestStreak)
	}
}

func TestComputeBadges(t *testing.T) {
	testCases := []struct {
		name     string
		stats    models.GlobalStats
		expected []string
	}{
		{"fresh account", models.GlobalStats{}, nil},
		{"first quiz", models.GlobalStats{TotalQuizzes: 1, AverageScore: 40},
			[]string{BadgeFirstQuiz}},
		{"ten quizzes high average", models.GlobalStats{TotalQuizzes: 10, AverageScore: 85},
			[]string{BadgeFirstQuiz, BadgeQuizMaster10, BadgeHighAchiever}},
		{"veteran", models.GlobalStats{
			TotalQuizzes: 50, ModulesCompleted: 5, PerfectScores: 2,
			CurrentStreak: 30, AverageScore: 92,
		}, []string{
			BadgeFirstQuiz, BadgeQuizMaster10, BadgeQuizMaster50,
			BadgeFirstModule, BadgeModuleMaster5, BadgePerfectionist,
			BadgeWeekStreak, BadgeMonthStreak, BadgeHighAchiever, BadgeExcellence,
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeBadges(&tc.stats)
			if len(got) != len(tc.expected) {
				t.Fatalf("Expected %d badges, got %d: %v", len(tc.expected), len(got), got)
			}
			for i, b := range tc.expected {
				if got[i] != b {
					t.Errorf("Badge %d: expected %s, got %s", i, b, got[i])
				}
			}
		})
	}
}

func TestEarnedBadgesAreRetained(t *testing.T) {
	p := models.NewParticipantProgress("u1")
	course := models.NewCourseProgress(day(2025, 3, 1))
	mp := models.NewModuleProgress()
	for i := 0; i < 7; i++ {
		ApplyAttempt(mp, attempt(string(rune('a'+i)), 95, day(2025, 3, 1+i)))
	}
	course.Modules["m1"] = mp
	p.Courses["flutter"] = course

	RecomputeStats(p, day(2025, 3, 7))
	if !hasBadge(p.GlobalStats.Badges, BadgeWeekStreak) {
		t.Fatalf("Expected week_streak earned, got %v", p.GlobalStats.Badges)
	}

	// Streak regresses; the badge must stay.
	ApplyAttempt(mp, attempt("z", 95, day(2025, 5, 1)))
	RecomputeStats(p, day(2025, 5, 1))
	if !hasBadge(p.GlobalStats.Badges, BadgeWeekStreak) {
		t.Errorf("week_streak lost after streak regression: %v", p.GlobalStats.Badges)
	}
}

func hasBadge(badges []string, id string) bool {
	for _, b := range badges {
		if b == id {
			return true
		}
	}
	return false
}
