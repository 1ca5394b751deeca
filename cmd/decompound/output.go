package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kerem-kaynak/german-decompounder/pkg/analysis"
)

// render writes v as JSON or YAML, or calls text for the text format.
func (a *app) render(v any, text func(io.Writer)) error {
	switch a.format {
	case "json":
		return json.NewEncoder(a.out).Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	text(a.out)
	return nil
}

func printSplit(w io.Writer, r splitResult) {
	alts := make([]string, len(r.Alternatives))
	for i, alt := range r.Alternatives {
		parts := make([]string, len(alt))
		for j, p := range alt {
			parts[j] = green(p.Text)
		}
		alts[i] = strings.Join(parts, gray(" + "))
	}
	fmt.Fprintf(w, "%s  %s\n", bold(r.Word), strings.Join(alts, gray("  |  ")))
}

func printTokens(w io.Writer, tokens []analysis.Token) {
	for _, t := range tokens {
		alt := "orig"
		if t.Alternative != analysis.OriginalAlternative {
			alt = fmt.Sprintf("alt%d", t.Alternative)
		}
		fmt.Fprintf(w, "%3d %-5s %s %s\n", t.Position, gray(alt), gray(fmt.Sprintf("[%d:%d]", t.Start, t.End)), green(t.Text))
	}
}

// printMetrics dumps the collected counters and histograms.
func (a *app) printMetrics(w io.Writer) {
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Warn("gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s %v\n", name, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s count=%d sum=%g\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}
