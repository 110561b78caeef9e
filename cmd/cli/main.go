package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"interviewprep/domain/quiz"
	"interviewprep/internal/config"
	"interviewprep/internal/container"
	"interviewprep/internal/logging"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "interviewprep-cli",
		Short: "Practice data analytics interview questions from the terminal",
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(
		newQuestionsCmd(&verbose),
		newEvaluateCmd(&verbose),
		newKeywordsCmd(&verbose),
		newPracticeCmd(&verbose),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openContainer builds the same components the web server uses, without
// file watching
func openContainer(ctx context.Context, verbose bool) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Questions.Watch = false
	cfg.Keywords.Watch = false

	level := "WARN"
	if verbose {
		level = "DEBUG"
	}
	logger, err := logging.New(level)
	if err != nil {
		return nil, err
	}

	c, err := container.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := c.Init(ctx); err != nil {
		c.Shutdown(ctx)
		return nil, err
	}
	if _, err := c.Catalog.Bank(); err != nil {
		c.Shutdown(ctx)
		return nil, fmt.Errorf("questions could not be loaded from %s, rerun with --verbose for details", c.Source.Name())
	}
	return c, nil
}

func newQuestionsCmd(verbose *bool) *cobra.Command {
	var category string
	var withAnswers bool

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the questions in a category",
		Long: `List the questions of the configured question bank.

Example: interviewprep-cli questions --category Technical --answers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := openContainer(ctx, *verbose)
			if err != nil {
				return err
			}
			defer c.Shutdown(ctx)

			bank, err := c.Catalog.Bank()
			if err != nil {
				return err
			}
			records := bank.Filter(category)
			if len(records) == 0 {
				fmt.Println(mutedStyle.Render(fmt.Sprintf("No questions in category %q.", category)))
				return nil
			}
			for i, r := range records {
				fmt.Printf("%s %s %s\n", numberStyle.Render(fmt.Sprintf("%3d.", i+1)), r.Question, mutedStyle.Render("["+r.Category+"]"))
				if withAnswers {
					fmt.Println(answerStyle.Render(r.Answer))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", quiz.AllCategories, "Category filter: All, Behavioral, Conceptual or Technical")
	cmd.Flags().BoolVar(&withAnswers, "answers", false, "Print the reference answers too")
	return cmd
}

func newEvaluateCmd(verbose *bool) *cobra.Command {
	var category string
	var index int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "evaluate [response...]",
		Short: "Score a response against a question's reference answer",
		Long: `Score a response against the reference answer of the question at
--index (0-based) in --category.

Example: interviewprep-cli evaluate --category Technical --index 2 "A primary key uniquely identifies a row"`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := openContainer(ctx, *verbose)
			if err != nil {
				return err
			}
			defer c.Shutdown(ctx)

			record, _, err := c.QuizService.Question(category, index)
			if err != nil {
				return err
			}
			fb, err := c.QuizService.Evaluate(ctx, uuid.Nil, category, index, strings.Join(args, " "))
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(fb)
			}
			fmt.Println(questionStyle.Render(record.Question))
			fmt.Println(renderFeedback(fb, newMarkdownRenderer()))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", quiz.AllCategories, "Category filter")
	cmd.Flags().IntVar(&index, "index", 0, "0-based question index within the category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the feedback as JSON")
	return cmd
}

func newKeywordsCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "keywords [response...]",
		Short: "Count the data analytics terms used in a response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := openContainer(ctx, *verbose)
			if err != nil {
				return err
			}
			defer c.Shutdown(ctx)

			report := c.QuizService.Keywords(strings.Join(args, " "))
			fmt.Println(report.Summary())
			return nil
		},
	}
}

func newPracticeCmd(verbose *bool) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Answer questions one by one and get feedback",
		Long: `Start an interactive practice session in the terminal.

Type your answer and finish it with an empty line. Commands:
  :skip   move on without answering
  :prev   go back one question
  :quit   end the session and show a summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := openContainer(ctx, *verbose)
			if err != nil {
				return err
			}
			defer c.Shutdown(ctx)

			p := newPractice(c.QuizService, os.Stdin, os.Stdout)
			return p.Run(ctx, category)
		},
	}

	cmd.Flags().StringVar(&category, "category", quiz.AllCategories, "Category filter")
	return cmd
}
