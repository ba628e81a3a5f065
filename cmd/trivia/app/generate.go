package app

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/daily-trivia/internal/content"
	"github.com/yourusername/daily-trivia/internal/dates"
	"github.com/yourusername/daily-trivia/internal/generator"
	"github.com/yourusername/daily-trivia/internal/trivia"
)

func newGenerateCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "generate <domain>",
		Short: "Generate per-day trivia data for a domain",
		Long: `Generate one JSON file per calendar date (365 dates) for a domain by
calling the Anthropic API once per date, with a fixed pause between calls.

Domains: historical-events, weird-holidays, blooming-plants

A full run takes several hours. Progress is written after each month; if the
run is interrupted, read the progress file and continue with
"trivia generate resume <domain> <month> <day>".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dom, runner, err := newRunner(args[0])
			if err != nil {
				return err
			}
			if !yes && !confirmFullRun(cmd, dom) {
				cmd.Println("Aborted.")
				return nil
			}
			return runner.Run(cmd.Context(), dom)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	cmd.AddCommand(newResumeCmd())
	cmd.AddCommand(newSingleCmd())
	return cmd
}

func newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <domain> <month> <day>",
		Short: "Resume an interrupted run from a date",
		Long: `Resume a generation run at the given date, skipping everything before it.
The resume point is not tracked automatically: read it from the domain's
progress file.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dom, runner, err := newRunner(args[0])
			if err != nil {
				return err
			}
			month, day, err := parseDate(args[1], args[2])
			if err != nil {
				return err
			}
			return runner.Resume(cmd.Context(), dom, month, day)
		},
	}
}

func newSingleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "single <domain> <month> <day>",
		Short: "Generate exactly one date",
		Long: `Generate and persist the document for a single date. The run artifacts
(progress, summary, index) are not updated.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dom, runner, err := newRunner(args[0])
			if err != nil {
				return err
			}
			month, day, err := parseDate(args[1], args[2])
			if err != nil {
				return err
			}
			rec, err := runner.GenerateOne(cmd.Context(), dom, month, day)
			if err != nil {
				return err
			}
			cmd.Printf("Wrote %s (%d items)\n", rec.File, rec.ItemCount)
			return nil
		},
	}
}

// newRunner resolves the domain and builds a generation runner. The API
// credential is checked once, up front, before any work begins.
func newRunner(slug string) (trivia.Domain, *generator.Runner, error) {
	dom, err := domainBySlug(slug)
	if err != nil {
		return trivia.Domain{}, nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		return trivia.Domain{}, nil, err
	}

	key := cfg.GetAnthropicKey()
	if key == "" {
		return trivia.Domain{}, nil, fmt.Errorf("ANTHROPIC_API_KEY is required (set in config file or environment variable)")
	}

	client := content.NewClient(key, cfg)
	return dom, generator.New(client, cfg), nil
}

func confirmFullRun(cmd *cobra.Command, dom trivia.Domain) bool {
	cmd.Printf("This will generate %s for all %d dates and call the Anthropic API once per date.\n",
		dom.Noun, dates.TotalDays)
	cmd.Print("Continue? [y/N]: ")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func parseDate(monthArg, dayArg string) (int, int, error) {
	month, err := strconv.Atoi(monthArg)
	if err != nil {
		// Month names are accepted too, e.g. "resume historical-events June 15".
		if num, ok := dates.MonthNumber(monthArg); ok {
			month = num
		} else {
			return 0, 0, fmt.Errorf("invalid month %q", monthArg)
		}
	}
	day, err := strconv.Atoi(dayArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid day %q", dayArg)
	}
	if !dates.Valid(month, day) {
		return 0, 0, fmt.Errorf("invalid date: month %d day %d", month, day)
	}
	return month, day, nil
}
