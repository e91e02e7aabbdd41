package recommend

import "github.com/kdimtricp/cinemente/internal/models"

const (
	shortMaxMinutes    = 90
	standardMaxMinutes = 120
)

// MatchesDuration reports whether runtime falls in the requested band.
// A nil runtime is unknown and only passes DurationAny.
func MatchesDuration(runtime *int, band models.Duration) bool {
	if band == models.DurationAny {
		return true
	}
	if runtime == nil {
		return false
	}

	minutes := *runtime
	switch band {
	case models.DurationShort:
		return minutes < shortMaxMinutes
	case models.DurationStandard:
		return minutes >= shortMaxMinutes && minutes <= standardMaxMinutes
	case models.DurationLong:
		return minutes > standardMaxMinutes
	default:
		return true
	}
}

// MatchesFranchise keeps a film only when its collection membership equals
// the requested franchise preference.
func MatchesFranchise(inCollection, wantFranchise bool) bool {
	return inCollection == wantFranchise
}

func Matches(film models.Film, filters models.Filters) bool {
	return MatchesDuration(film.Runtime, filters.Duration) &&
		MatchesFranchise(film.InCollection, filters.Franchise)
}
