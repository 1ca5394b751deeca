package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kerem-kaynak/german-decompounder/pkg/analysis"
	"github.com/kerem-kaynak/german-decompounder/pkg/config"
	"github.com/kerem-kaynak/german-decompounder/pkg/decompound"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
)

type app struct {
	cfg          config.Config
	logger       *slog.Logger
	decompounder *decompound.Decompounder
	registry     *prometheus.Registry
	format       string
	showMetrics  bool
	out          io.Writer
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}
	root := &cobra.Command{
		Use:   "decompound",
		Short: "Split German compound words into their parts",
		Long: `Split German compound words into dictionary words.

Settings come from --config, DECOMPOUND_* environment variables and flags.
Without words on the command line, split and analyze read lines from stdin.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().StringVarP(&a.format, "output", "o", "text", "Output format: text, json or yaml")
	root.PersistentFlags().BoolVar(&a.showMetrics, "metrics", false, "Print request metrics to stderr on exit")

	root.AddCommand(newSplitCommand(a), newAnalyzeCommand(a))
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	switch a.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", a.format)
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = config.NewLogger(cfg.Log, os.Stderr)
	a.registry = prometheus.NewRegistry()

	d, err := config.Open(cfg, a.logger, decompound.MustNewMetrics(a.registry))
	if err != nil {
		return err
	}
	a.decompounder = d
	return nil
}

func (a *app) close() error {
	if a.decompounder == nil {
		return nil
	}
	if a.showMetrics {
		a.printMetrics(os.Stderr)
	}
	return a.decompounder.Close()
}

func newSplitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "split [word...]",
		Short: "Decompound words into every minimal split",
		Example: `  decompound split --dict words.txt Bahnhofsuhr Haustür
  decompound split --backend classifier --prefix-trie prefix.tsv -o json Bahnhofsuhr`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.interactive(cmd.InOrStdin(), "split", a.split)
			}
			return a.split(strings.Join(args, " "))
		},
	}
}

func newAnalyzeCommand(a *app) *cobra.Command {
	var tokensOnly bool
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Tokenize text into words and their normalized parts",
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer := analysis.NewAnalyzer(a.decompounder, a.cfg.Analysis)
			run := func(text string) error {
				if tokensOnly {
					terms := analyzer.Tokenize(text)
					return a.render(terms, func(w io.Writer) { fmt.Fprintln(w, strings.Join(terms, " ")) })
				}
				tokens := analyzer.Analyze(text)
				return a.render(tokens, func(w io.Writer) { printTokens(w, tokens) })
			}
			if len(args) == 0 {
				return a.interactive(cmd.InOrStdin(), "analyze", run)
			}
			return run(strings.Join(args, " "))
		},
	}
	cmd.Flags().BoolVar(&tokensOnly, "tokens", false, "Print the deduplicated token list only")
	return cmd
}

// splitResult is the serialized form of one decompounded word.
type splitResult struct {
	Word         string                   `json:"word" yaml:"word"`
	Alternatives []decompound.Alternative `json:"alternatives" yaml:"alternatives"`
}

func (a *app) split(line string) error {
	var results []splitResult
	for _, word := range strings.Fields(line) {
		results = append(results, splitResult{Word: word, Alternatives: a.decompounder.Decompound(word)})
	}
	return a.render(results, func(w io.Writer) {
		for _, r := range results {
			printSplit(w, r)
		}
	})
}

// interactive reads lines until EOF, handling each with run.
func (a *app) interactive(in io.Reader, mode string, run func(string) error) error {
	fmt.Fprintf(a.out, "%s (%s mode, %s backend)\n", bold("German decompounder"), mode, a.cfg.Backend)
	fmt.Fprintln(a.out, gray("Type words or a sentence, press Enter. Ctrl+D to exit."))
	fmt.Fprintln(a.out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.out, cyan("> "))
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := run(text); err != nil {
			return err
		}
		fmt.Fprintln(a.out)
	}
}
