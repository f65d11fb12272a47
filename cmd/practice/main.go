// Command practice runs a mock test in the terminal and prints the
// diagnostic report at the end.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/pyqforge/backend/internal/corpus"
	"github.com/pyqforge/backend/internal/domain/attempt"
	"github.com/pyqforge/backend/internal/domain/diagnostics"
	"github.com/pyqforge/backend/internal/domain/mocktest"
	"github.com/pyqforge/backend/internal/domain/question"
	"github.com/pyqforge/backend/internal/service"
	"github.com/pyqforge/backend/internal/simulation"
	"github.com/pyqforge/backend/internal/store"
)

const (
	colorReset = "\033[0m"
	colorGray  = "\033[90m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
)

func main() {
	corpusFile := flag.String("corpus", "", "Question corpus JSON file (default: synthetic JEE_MAIN bank)")
	examType := flag.String("exam", "JEE_MAIN", "Exam type")
	difficulty := flag.String("difficulty", "mixed", "Difficulty filter (easy, medium, hard, mixed)")
	count := flag.Int("count", 0, "Question count for exams without a preset (0 = default)")
	partialCredit := flag.Bool("partial-credit", false, "Award partial marks on multiple-correct questions")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := run(*corpusFile, *examType, question.Difficulty(*difficulty), *count, *partialCredit, logger); err != nil {
		fmt.Fprintf(os.Stderr, colorRed+"Error: %v"+colorReset+"\n", err)
		os.Exit(1)
	}
}

func run(corpusFile, examType string, difficulty question.Difficulty, count int, partialCredit bool, logger *slog.Logger) error {
	ctx := context.Background()

	qs := simulation.Default()
	if corpusFile != "" {
		var err error
		if qs, err = corpus.LoadFile(corpusFile); err != nil {
			return err
		}
	}

	db, err := store.NewSQLite(":memory:")
	if err != nil {
		return err
	}
	defer db.Close()

	exams := service.NewExamService(db, nil, logger)
	defer exams.Close()

	if _, err := exams.ImportQuestions(ctx, qs); err != nil {
		return err
	}

	test, err := exams.GenerateTestWithOptions(ctx, service.GenerateRequest{
		ExamType:      examType,
		Difficulty:    difficulty,
		QuestionCount: count,
		PartialCredit: &partialCredit,
	})
	if err != nil {
		return err
	}
	att, err := exams.StartAttempt(ctx, test.ID)
	if err != nil {
		return err
	}

	printBanner(test)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          colorGreen + "Answer> " + colorReset,
		HistoryFile:     historyFile(),
		HistoryLimit:    200,
		AutoComplete:    readline.NewPrefixCompleter(readline.PcItem("/submit"), readline.PcItem("/quit")),
		InterruptPrompt: "^C",
		EOFPrompt:       "/submit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialise readline: %w", err)
	}
	defer rl.Close()

	responses, quit := collect(rl, test)
	if quit {
		fmt.Println("Attempt abandoned.")
		return nil
	}

	analysis, err := submit(ctx, exams, att.ID, responses)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Score: %.2f / %.2f\n\n", analysis.ObtainedMarks, analysis.MaxMarks)
	fmt.Println(diagnostics.Markdown(*analysis))
	return nil
}

// submit finalizes the attempt. If the timer got there first the saved
// analysis of the auto-submission is returned instead.
func submit(ctx context.Context, exams *service.ExamService, attemptID string, rs []attempt.Response) (*diagnostics.Analysis, error) {
	res, err := exams.SubmitAttempt(ctx, attemptID, rs)
	if errors.Is(err, attempt.ErrAlreadyFinalized) {
		fmt.Println(colorRed + "Time is up; the attempt was auto-submitted." + colorReset)
		return exams.GetAnalysis(ctx, attemptID)
	}
	if err != nil {
		return nil, err
	}
	return res.Analysis, nil
}

// collect walks the questions in order. It stops early on /submit or EOF
// and reports quit=true on /quit.
func collect(rl *readline.Instance, test *mocktest.MockTest) ([]attempt.Response, bool) {
	view := test.StudentView()
	var responses []attempt.Response

	for i, q := range view.Questions {
		printQuestion(i+1, len(view.Questions), q)
		shown := time.Now()

		for {
			line, err := rl.Readline()
			if err == readline.ErrInterrupt {
				fmt.Println("Use /quit to abandon or /submit to finish")
				continue
			} else if err == io.EOF {
				return responses, false
			} else if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
				return responses, false
			}

			cmd, selected, err := parseAnswer(line, q)
			if err != nil {
				fmt.Printf(colorRed+"%v"+colorReset+"\n", err)
				continue
			}
			switch cmd {
			case cmdQuit:
				return nil, true
			case cmdSubmit:
				return responses, false
			}
			if len(selected) > 0 {
				responses = append(responses, attempt.Response{
					QuestionID:       q.ID,
					SelectedOptions:  selected,
					TimeSpentSeconds: int(time.Since(shown).Seconds()),
				})
			}
			break
		}
	}
	return responses, false
}

type command int

const (
	cmdAnswer command = iota
	cmdSubmit
	cmdQuit
)

// parseAnswer reads one input line. An empty line skips the question.
// MCQ answers are comma-separated option ids; integer answers are taken
// verbatim.
func parseAnswer(line string, q question.Question) (command, []string, error) {
	input := strings.TrimSpace(line)
	switch input {
	case "/submit":
		return cmdSubmit, nil, nil
	case "/quit", "/exit":
		return cmdQuit, nil, nil
	case "":
		return cmdAnswer, nil, nil
	}

	if q.Type == question.TypeInteger {
		return cmdAnswer, []string{input}, nil
	}

	valid := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		valid[o.ID] = true
	}
	var selected []string
	for _, part := range strings.Split(input, ",") {
		id := strings.ToLower(strings.TrimSpace(part))
		if id == "" {
			continue
		}
		if !valid[id] {
			return cmdAnswer, nil, fmt.Errorf("unknown option %q", id)
		}
		selected = append(selected, id)
	}
	if q.Type == question.TypeSingleCorrect && len(selected) > 1 {
		return cmdAnswer, nil, fmt.Errorf("pick exactly one option")
	}
	return cmdAnswer, selected, nil
}

func printBanner(t *mocktest.MockTest) {
	fmt.Printf("\n%s\n", t.Name)
	fmt.Printf(colorGray+"%d questions, %.0f marks"+colorReset, len(t.Questions), t.TotalMarks)
	if t.TimeLimitMinutes > 0 {
		fmt.Printf(colorGray+", %d minutes"+colorReset, t.TimeLimitMinutes)
	}
	fmt.Println()
	fmt.Println(colorGray + "Type option ids (a,c), a number for integer questions, Enter to skip, /submit or /quit." + colorReset)
}

func printQuestion(n, total int, q question.Question) {
	fmt.Printf("\n[%d/%d] %s | %s | %d | %s\n", n, total, q.Subject, q.Chapter, q.Year, q.Difficulty)
	fmt.Println(q.Text)
	for _, o := range q.Options {
		fmt.Printf("  (%s) %s\n", o.ID, o.Text)
	}
	if q.Type == question.TypeMultipleCorrect {
		fmt.Println(colorGray + "One or more options are correct." + colorReset)
	}
	if q.Type == question.TypeInteger {
		fmt.Println(colorGray + "Enter an integer." + colorReset)
	}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".pyqforge")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}
