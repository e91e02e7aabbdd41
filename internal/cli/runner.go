package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kdimtricp/cinemente/internal/logging"
	"github.com/kdimtricp/cinemente/internal/models"
	"github.com/kdimtricp/cinemente/internal/quiz"
	"github.com/kdimtricp/cinemente/internal/recommend"
)

type Recommender interface {
	Recommend(ctx context.Context, filters models.Filters) (*recommend.Result, error)
}

// Runner drives the quiz in a terminal: one question at a time, then a
// recommendation, then a fresh cycle.
type Runner struct {
	in          *bufio.Reader
	out         io.Writer
	genres      []models.Genre
	session     *quiz.Session
	recommender Recommender
}

func NewRunner(in io.Reader, out io.Writer, genres []models.Genre, recommender Recommender) *Runner {
	return &Runner{
		in:          bufio.NewReader(in),
		out:         out,
		genres:      genres,
		session:     quiz.NewSession(quiz.Questions(genres)),
		recommender: recommender,
	}
}

// Run loops over quiz cycles until the user quits or input ends.
func (r *Runner) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "Answer each question with the option number. Type b to go back, q to quit.")

	for {
		if err := r.cycle(ctx); err != nil {
			if errors.Is(err, ErrQuit) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "Goodbye!")
				return nil
			}
			return err
		}
	}
}

func (r *Runner) cycle(ctx context.Context) error {
	defer r.session.Reset()

	for !r.session.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.ask(); err != nil {
			return err
		}
	}

	filters, err := quiz.BuildFilters(r.session.Answers(), r.genres)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out, "\nLooking for a film...")
	result, err := r.recommender.Recommend(ctx, filters)
	if err != nil {
		logging.Error().Err(err).Msg("recommendation failed")
		fmt.Fprintf(r.out, "API error: %v\n\n", err)
		return nil
	}

	r.printResult(result)
	return nil
}

func (r *Runner) ask() error {
	q, _ := r.session.Current()
	pos, total := r.session.Position()

	fmt.Fprintf(r.out, "\n[%d/%d] %s\n", pos+1, total, q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(r.out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(r.out, "> ")

	line, err := readLine(r.in)
	if err != nil {
		return err
	}

	switch strings.ToLower(line) {
	case "q", "quit":
		return ErrQuit
	case "b", "back":
		if !r.session.Back() {
			fmt.Fprintln(r.out, "Already at the first question.")
		}
		return nil
	}

	choice := ""
	if line != "" {
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(q.Options) {
			fmt.Fprintf(r.out, "Please enter a number between 1 and %d.\n", len(q.Options))
			return nil
		}
		choice = q.Options[n-1]
	}

	if err := r.session.Answer(choice); err != nil {
		if errors.Is(err, quiz.ErrNoSelection) {
			fmt.Fprintln(r.out, "Select an option to continue.")
			return nil
		}
		return err
	}
	return nil
}

func (r *Runner) printResult(result *recommend.Result) {
	switch result.Outcome {
	case recommend.OutcomePicked:
		fmt.Fprintf(r.out, "I recommend: %s\n\n", displayTitle(*result.Pick))
	case recommend.OutcomeAllSeen:
		fmt.Fprintln(r.out, "You have already seen every available title. Try one of:")
		for _, f := range result.Alternatives {
			fmt.Fprintf(r.out, "- %s\n", f.Title)
		}
		fmt.Fprintln(r.out)
	default:
		fmt.Fprintln(r.out, "No film found with these preferences.")
		fmt.Fprintln(r.out)
	}
}

func displayTitle(f models.Film) string {
	if year := f.Year(); year != "" {
		return fmt.Sprintf("%s (%s)", f.Title, year)
	}
	return f.Title
}
