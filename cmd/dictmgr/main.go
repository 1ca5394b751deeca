package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kerem-kaynak/german-decompounder/pkg/decompound"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	var dictPath string
	root := &cobra.Command{
		Use:   "dictmgr",
		Short: "Manage decompounder word lists and their compiled automata",
		Long: `Manage a word list (one word per line) and the FST compiled from it.

add and remove edit the word list and recompile the sibling .fst file.`,
		SilenceUsage: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVarP(&dictPath, "dict", "d", "", "Word list path")
	_ = root.MarkPersistentFlagRequired("dict")

	var outPath string
	compile := &cobra.Command{
		Use:   "compile",
		Short: "Compile the word list into an FST",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := readWordList(dictPath)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = fstPath(dictPath)
			}
			n, err := compileTo(words, outPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Compiled %d words into %s\n", n, outPath)
			return nil
		},
	}
	compile.Flags().StringVar(&outPath, "out", "", "FST output path (default: next to the word list)")

	add := &cobra.Command{
		Use:   "add <word> [word...]",
		Short: "Add words to the word list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(out, dictPath, func(words []string) []string {
				for _, word := range args {
					word = strings.TrimSpace(word)
					if word == "" {
						continue
					}
					if slices.ContainsFunc(words, func(w string) bool { return strings.EqualFold(w, word) }) {
						fmt.Fprintf(out, "%s %s\n", yellow("Exists:"), word)
						continue
					}
					words = append(words, word)
					fmt.Fprintf(out, "%s %s\n", green("Added:"), word)
				}
				return words
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <word> [word...]",
		Short: "Remove words from the word list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(out, dictPath, func(words []string) []string {
				for _, word := range args {
					n := len(words)
					words = slices.DeleteFunc(words, func(w string) bool { return strings.EqualFold(w, word) })
					if len(words) == n {
						fmt.Fprintf(out, "%s %s\n", yellow("Not found:"), word)
						continue
					}
					fmt.Fprintf(out, "%s %s\n", red("Removed:"), word)
				}
				return words
			})
		},
	}

	contains := &cobra.Command{
		Use:   "contains <word>",
		Short: "Check whether a word is in the dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := decompound.OpenDictionary(dictPath)
			if err != nil {
				return err
			}
			defer dict.Close()
			if !dict.Contains(args[0]) {
				return fmt.Errorf("%q not in dictionary", args[0])
			}
			fmt.Fprintf(out, "%s %q exists in dictionary\n", green("✓"), args[0])
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show dictionary statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := decompound.OpenDictionary(dictPath)
			if err != nil {
				return err
			}
			defer dict.Close()
			fmt.Fprintf(out, "Dictionary: %s\n", dictPath)
			fmt.Fprintf(out, "Word count: %d\n", dict.WordCount())
			if filepath.Ext(dictPath) != ".fst" {
				if info, err := os.Stat(fstPath(dictPath)); err == nil {
					fmt.Fprintf(out, "FST size:   %d bytes\n", info.Size())
				}
			}
			return nil
		},
	}

	words := &cobra.Command{
		Use:   "words",
		Short: "List the compiled words in key order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := decompound.OpenDictionary(dictPath)
			if err != nil {
				return err
			}
			defer dict.Close()
			list, err := dict.Words()
			if err != nil {
				return err
			}
			w := bufio.NewWriter(out)
			for _, word := range list {
				fmt.Fprintln(w, word)
			}
			return w.Flush()
		},
	}

	root.AddCommand(compile, add, remove, contains, stats, words)
	return root
}

func fstPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".fst"
}

func readWordList(path string) ([]string, error) {
	if filepath.Ext(path) == ".fst" {
		return nil, errors.New("word list expected, got a compiled .fst file")
	}
	return decompound.ReadWordListFile(path)
}

// edit applies fn to the word list, writes it back sorted and recompiles.
func edit(out io.Writer, path string, fn func([]string) []string) error {
	words, err := readWordList(path)
	if err != nil {
		return err
	}
	words = fn(words)
	slices.SortFunc(words, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	if err := writeWordList(path, words); err != nil {
		return err
	}
	n, err := compileTo(words, fstPath(path))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Total words: %d\n", n)
	return nil
}

func writeWordList(path string, words []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	for _, word := range words {
		fmt.Fprintln(w, word)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func compileTo(words []string, path string) (int, error) {
	dict, err := decompound.CompileDictionary(words)
	if err != nil {
		return 0, err
	}
	defer dict.Close()
	if err := dict.Save(path); err != nil {
		return 0, err
	}
	return dict.WordCount(), nil
}
