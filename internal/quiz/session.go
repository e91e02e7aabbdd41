package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrNoSelection   = errors.New("select an option to continue")
	ErrUnknownOption = errors.New("unknown option")
	ErrFinished      = errors.New("all questions answered")
)

// Session walks a user through the questions one at a time.
type Session struct {
	questions []Question
	current   int
	answers   Answers
}

func NewSession(questions []Question) *Session {
	return &Session{
		questions: questions,
		answers:   make(Answers),
	}
}

func (s *Session) Current() (Question, bool) {
	if s.Done() {
		return Question{}, false
	}
	return s.questions[s.current], true
}

func (s *Session) Position() (int, int) {
	return s.current, len(s.questions)
}

// Answer records choice for the current question and advances.
func (s *Session) Answer(choice string) error {
	q, ok := s.Current()
	if !ok {
		return ErrFinished
	}
	if choice == "" {
		return ErrNoSelection
	}
	if !q.HasOption(choice) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, choice)
	}

	s.answers[s.current] = choice
	s.current++
	return nil
}

// Back returns to the previous question and forgets its answer.
// It reports false on the first question.
func (s *Session) Back() bool {
	if s.current == 0 {
		return false
	}
	s.current--
	delete(s.answers, s.current)
	return true
}

func (s *Session) Done() bool {
	return s.current >= len(s.questions)
}

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() Answers {
	out := make(Answers, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

func (s *Session) Reset() {
	s.current = 0
	s.answers = make(Answers)
}
