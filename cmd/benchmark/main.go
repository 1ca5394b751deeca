package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/kerem-kaynak/german-decompounder/pkg/analysis"
	"github.com/kerem-kaynak/german-decompounder/pkg/config"
	"github.com/kerem-kaynak/german-decompounder/pkg/decompound"
)

const boxWidth = 62

var (
	line = strings.Repeat("─", boxWidth)

	dim    = color.New(color.Faint).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()

	iterations int
	warmup     int
)

func main() {
	fs := pflag.CommandLine
	config.RegisterFlags(fs)
	fs.IntVarP(&iterations, "iterations", "n", 100000, "Iterations per benchmark")
	fs.IntVar(&warmup, "warmup", 1000, "Warmup iterations per benchmark")
	pflag.Parse()

	if !fs.Changed("dict") && os.Getenv(config.EnvPrefix+"_DICTIONARY") == "" {
		_ = fs.Set("dict", "dictionaries/german_compound_word_components.txt")
	}
	path, _ := fs.GetString("config")
	cfg, err := config.Load(path, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loading %s backend... ", cfg.Backend)
	start := time.Now()
	d, err := config.Open(cfg, nil, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}
	defer d.Close()
	fmt.Printf("done in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("Iterations: %d (warmup: %d)\n", iterations, warmup)
	fmt.Println("Reference: 1 second = 1,000,000,000 ns")
	fmt.Println()

	singleWord := "Wärmedämmung"
	longCompound := "Stahlbetondecke"
	ambiguous := "Wachstube"
	sentence := "Der Brandschutzkonzept und die Wärmedämmung der Stahlbetondecke"

	analyzer := analysis.NewAnalyzer(d, cfg.Analysis)

	printHeader("FULL PIPELINE THROUGHPUT")
	bench("Single word", func() { d.Decompound(singleWord) })
	bench("Long compound", func() { d.Decompound(longCompound) })
	bench("Ambiguous compound", func() { d.Decompound(ambiguous) })
	bench("Analyze sentence", func() { analyzer.Analyze(sentence) })
	bench("Tokenize sentence", func() { analyzer.Tokenize(sentence) })
	printFooter()
	fmt.Println()

	printHeader("COMPONENT BREAKDOWN")
	bench("Normalize (NFC buffer)", func() { decompound.Normalize(singleWord) })
	var dict *decompound.Dictionary
	switch o := d.Oracle().(type) {
	case *decompound.Dictionary:
		dict = o
	case decompound.UmlautFold:
		dict = o.Dictionary
	}
	if dict != nil {
		bench("Dictionary lookup", func() { dict.Contains("dämmung") })
	}

	norm := analysis.NewNormalizerFromConfig(cfg.Analysis.Normalizers)
	bench("Normalizer (full)", func() { norm.Normalize(singleWord) })
	bench("Normalizer (lowercase)", func() { norm.LowercaseOnly(singleWord) })

	if d.CacheEnabled() {
		d.ClearCache()
		d.Decompound(singleWord)
		bench("Split (cache hit)", func() { d.Decompound(singleWord) })
		bench("Split (cache miss)", func() {
			d.ClearCache()
			d.Decompound(singleWord)
		})
	}
	printFooter()
	fmt.Println()

	printHeader("NORMALIZER STEPS BREAKDOWN")
	bench("NFKD decompose", func() { analysis.NFKDDecompose(singleWord) })
	bench("Remove control chars", func() { analysis.RemoveControlChars(singleWord) })
	bench("Lowercase", func() { analysis.Lowercase(singleWord) })
	bench("Normalize quotes", func() { analysis.NormalizeQuotes("„Wärmedämmung“") })
	bench("Expand ligatures", func() { analysis.ExpandLigatures(singleWord) })
	bench("Convert Eszett to ss", func() { analysis.ConvertEszett("Größe") })
	bench("Remove combining marks", func() { analysis.RemoveCombiningMarks("Wa\u0308rme") })
	bench("Stem German", func() { analysis.StemGerman("warme") })
	printFooter()
}

func bench(name string, fn func()) {
	for i := 0; i < warmup; i++ {
		fn()
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	elapsed := time.Since(start)

	opsPerSec := float64(iterations) / elapsed.Seconds()
	nsPerOp := float64(elapsed.Nanoseconds()) / float64(iterations)

	if len(name) > 26 {
		name = name[:26]
	}

	// Pad the plain row, then colorize the numbers.
	plain := fmt.Sprintf("  %-26s %10.0f ops/sec %8.0f ns", name, opsPerSec, nsPerOp)
	colored := fmt.Sprintf("  %-26s %s ops/sec %s ns",
		name,
		green(fmt.Sprintf("%10.0f", opsPerSec)),
		yellow(fmt.Sprintf("%8.0f", nsPerOp)))
	if extra := len(padLine(plain)) - len(plain); extra > 0 {
		colored += strings.Repeat(" ", extra)
	}

	fmt.Println(dim("│") + colored + dim("│"))
}

func padLine(content string) string {
	if len(content) >= boxWidth {
		return content[:boxWidth]
	}
	return content + strings.Repeat(" ", boxWidth-len(content))
}

func printHeader(title string) {
	fmt.Println(dim("┌" + line + "┐"))
	fmt.Println(dim("│") + cyan(padLine("  "+title)) + dim("│"))
	fmt.Println(dim("├" + line + "┤"))
}

func printFooter() {
	fmt.Println(dim("└" + line + "┘"))
}
