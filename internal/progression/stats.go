package progression

import (
	"sort"
	"time"

	"flutterlearn-service/internal/models"
)

// Badge identifiers awarded from global stats.
const (
	BadgeFirstQuiz     = "first_quiz"
	BadgeQuizMaster10  = "quiz_master_10"
	BadgeQuizMaster50  = "quiz_master_50"
	BadgeFirstModule   = "first_module"
	BadgeModuleMaster5 = "module_master_5"
	BadgePerfectionist = "perfectionist"
	BadgeWeekStreak    = "week_streak"
	BadgeMonthStreak   = "month_streak"
	BadgeHighAchiever  = "high_achiever"
	BadgeExcellence    = "excellence"
)

// CurrentStreak counts the run of consecutive calendar days with at least
// one attempt, starting from the most recent attempt day. A gap of more
// than one day breaks the run.
func CurrentStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(dates))
	seen := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		day := d.UTC().Truncate(24 * time.Hour)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			streak++
			continue
		}
		break
	}
	return streak
}

type badgeRule struct {
	id    string
	earns func(*models.GlobalStats) bool
}

var badgeRules = []badgeRule{
	{BadgeFirstQuiz, func(s *models.GlobalStats) bool { return s.TotalQuizzes >= 1 }},
	{BadgeQuizMaster10, func(s *models.GlobalStats) bool { return s.TotalQuizzes >= 10 }},
	{BadgeQuizMaster50, func(s *models.GlobalStats) bool { return s.TotalQuizzes >= 50 }},
	{BadgeFirstModule, func(s *models.GlobalStats) bool { return s.ModulesCompleted >= 1 }},
	{BadgeModuleMaster5, func(s *models.GlobalStats) bool { return s.ModulesCompleted >= 5 }},
	{BadgePerfectionist, func(s *models.GlobalStats) bool { return s.PerfectScores >= 1 }},
	{BadgeWeekStreak, func(s *models.GlobalStats) bool { return s.CurrentStreak >= 7 }},
	{BadgeMonthStreak, func(s *models.GlobalStats) bool { return s.CurrentStreak >= 30 }},
	{BadgeHighAchiever, func(s *models.GlobalStats) bool { return s.AverageScore >= 80 }},
	{BadgeExcellence, func(s *models.GlobalStats) bool { return s.AverageScore >= 90 }},
}

// ComputeBadges evaluates the badge rule table against a stats snapshot.
func ComputeBadges(stats *models.GlobalStats) []string {
	var earned []string
	for _, rule := range badgeRules {
		if rule.earns(stats) {
			earned = append(earned, rule.id)
		}
	}
	return earned
}

func unionBadges(existing, computed []string) []string {
	seen := make(map[string]bool, len(existing))
	out := make([]string, 0, len(existing)+len(computed))
	for _, b := range existing {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	for _, b := range computed {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}
