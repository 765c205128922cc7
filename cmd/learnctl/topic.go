package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"learnpath_backend/internal/model"
	"learnpath_backend/pkg/client"

	"github.com/spf13/cobra"
)

var contentCmd = &cobra.Command{
	Use:   "content <topic>",
	Short: "Show lesson content for a topic, generating it if needed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session(cmd)
		if err != nil {
			return err
		}
		content, err := s.LoadContent(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return render(cmd, content)
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz <topic>",
	Short: "Show or play the quiz for a topic, generating it if needed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session(cmd)
		if err != nil {
			return err
		}
		quiz, err := s.LoadQuiz(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if play, _ := cmd.Flags().GetBool("play"); play {
			return playQuiz(cmd.InOrStdin(), cmd.OutOrStdout(), quiz)
		}
		return render(cmd, quiz)
	},
}

// playQuiz asks every question on out and reads option numbers from in.
func playQuiz(in io.Reader, out io.Writer, quiz *model.Quiz) error {
	run := client.NewQuizRun(quiz)
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "%s (%d questions)\n", quiz.Title, run.Total())
	for !run.Done() {
		q := run.Current()
		fmt.Fprintf(out, "\n%d. %s\n", run.Index()+1, q.Question)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}

		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return err
				}
				return fmt.Errorf("quiz abandoned")
			}
			n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err != nil || n < 1 || n > len(q.Options) {
				fmt.Fprintf(out, "Enter a number from 1 to %d\n", len(q.Options))
				continue
			}
			if err := run.Select(q.Options[n-1]); err != nil {
				return err
			}
			break
		}

		correct, err := run.Submit()
		if err != nil {
			return err
		}
		if correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Incorrect. The answer is %q.\n", q.CorrectAnswer)
		}
		if q.Explanation != "" {
			fmt.Fprintln(out, q.Explanation)
		}
		run.Next()
	}

	fmt.Fprintf(out, "\nScore: %d/%d (%d%%)\n", run.Score(), run.Total(), run.Percentage())
	return nil
}

func init() {
	quizCmd.Flags().Bool("play", false, "Answer the questions interactively")
}
