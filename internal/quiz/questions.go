package quiz

import "github.com/kdimtricp/cinemente/internal/models"

// Question indices. Answers are keyed by these.
const (
	QuestionGenre = iota
	QuestionPeriod
	QuestionDuration
	QuestionEnding
	QuestionFame
	QuestionNationality
	QuestionSeries
)

const (
	PeriodClassics = "Classics (before 1980)"
	PeriodEighties = "80s and 90s"
	PeriodNoughts  = "2000-2010"
	PeriodRecent   = "Recent (2010 to today)"

	DurationShort    = "Less than 90 minutes"
	DurationStandard = "About 90-120 minutes"
	DurationLong     = "More than 2 hours"

	EndingOpen          = "Open ending"
	EndingHappy         = "Happy ending"
	EndingTragic        = "Tragic ending"
	EndingUnpredictable = "Unpredictable ending"

	FameFamous  = "Famous"
	FameObscure = "Little known"

	NationalityAmerican = "American"
	NationalityEuropean = "European"
	NationalityAsian    = "Asian"
	NationalityAny      = "No preference"

	SeriesStandalone = "Standalone"
	SeriesFranchise  = "Saga/franchise"
)

type Question struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Questions returns the fixed question sequence. The genre options are
// the genre names in the order TMDb returned them.
func Questions(genres []models.Genre) []Question {
	genreNames := make([]string, 0, len(genres))
	for _, g := range genres {
		genreNames = append(genreNames, g.Name)
	}

	return []Question{
		{
			Index:   QuestionGenre,
			Text:    "Which film genre do you prefer?",
			Options: genreNames,
		},
		{
			Index:   QuestionPeriod,
			Text:    "Which production period do you prefer?",
			Options: []string{PeriodClassics, PeriodEighties, PeriodNoughts, PeriodRecent},
		},
		{
			Index:   QuestionDuration,
			Text:    "How much time do you have to watch a film?",
			Options: []string{DurationShort, DurationStandard, DurationLong},
		},
		{
			Index:   QuestionEnding,
			Text:    "What kind of ending do you prefer?",
			Options: []string{EndingOpen, EndingHappy, EndingTragic, EndingUnpredictable},
		},
		{
			Index:   QuestionFame,
			Text:    "Do you prefer a famous film or a little-known one?",
			Options: []string{FameFamous, FameObscure},
		},
		{
			Index:   QuestionNationality,
			Text:    "Do you have a preference about the film's nationality?",
			Options: []string{NationalityAmerican, NationalityEuropean, NationalityAsian, NationalityAny},
		},
		{
			Index:   QuestionSeries,
			Text:    "Do you prefer standalone films or ones that are part of a saga/franchise?",
			Options: []string{SeriesStandalone, SeriesFranchise},
		},
	}
}
