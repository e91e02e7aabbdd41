package quiz

import (
	"errors"
	"fmt"

	"github.com/kdimtricp/cinemente/internal/models"
)

var ErrIncompleteAnswers = errors.New("incomplete answers")

// Answers maps a question index to the chosen option.
type Answers map[int]string

// required lists the answers BuildFilters reads. The ending answer is
// collected but has no TMDb counterpart.
var required = []int{
	QuestionGenre,
	QuestionPeriod,
	QuestionDuration,
	QuestionFame,
	QuestionNationality,
	QuestionSeries,
}

// BuildFilters turns a completed answer set into discovery filters.
// An unknown genre name leaves the genre unfiltered.
func BuildFilters(answers Answers, genres []models.Genre) (models.Filters, error) {
	for _, idx := range required {
		if answers[idx] == "" {
			return models.Filters{}, fmt.Errorf("%w: question %d unanswered", ErrIncompleteAnswers, idx)
		}
	}

	var f models.Filters

	for _, g := range genres {
		if g.Name == answers[QuestionGenre] {
			f.GenreID = g.ID
			break
		}
	}

	switch answers[QuestionPeriod] {
	case PeriodClassics:
		f.ReleasedUntil = "1979-12-31"
	case PeriodEighties:
		f.ReleasedFrom, f.ReleasedUntil = "1980-01-01", "1999-12-31"
	case PeriodNoughts:
		f.ReleasedFrom, f.ReleasedUntil = "2000-01-01", "2010-12-31"
	default:
		f.ReleasedFrom = "2010-01-01"
	}

	switch answers[QuestionDuration] {
	case DurationShort:
		f.Duration = models.DurationShort
	case DurationStandard:
		f.Duration = models.DurationStandard
	case DurationLong:
		f.Duration = models.DurationLong
	}

	if answers[QuestionFame] == FameFamous {
		f.Popularity = models.PopularityFamous
	} else {
		f.Popularity = models.PopularityObscure
	}

	// TMDb filters on a single original language, so only the American
	// answer narrows discovery.
	if answers[QuestionNationality] == NationalityAmerican {
		f.OriginalLanguage = "en"
	}

	f.Franchise = answers[QuestionSeries] == SeriesFranchise

	return f, nil
}
