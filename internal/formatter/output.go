package formatter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"symptom-checker/pkg"
)

// Output formats accepted by DisplayResults.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// DisplayResults writes the analysis to w in the requested format.
func DisplayResults(w io.Writer, analysis *pkg.Analysis, format string) error {
	switch format {
	case FormatJSON:
		return displayJSON(w, analysis)
	case FormatYAML:
		return displayYAML(w, analysis)
	case FormatHuman, "":
		displayHuman(w, analysis)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: human, json, yaml)", format)
	}
}

func displayJSON(w io.Writer, analysis *pkg.Analysis) error {
	output, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func displayYAML(w io.Writer, analysis *pkg.Analysis) error {
	output, err := yaml.Marshal(analysis)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func displayHuman(w io.Writer, analysis *pkg.Analysis) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "SUMMARY:")
	if analysis.Summary == "" {
		fmt.Fprintln(w, "   (none)")
	} else {
		fmt.Fprintf(w, "   %s\n", analysis.Summary)
	}
	fmt.Fprintln(w)

	yellow.Fprintln(w, "POSSIBLE CAUSES:")
	printList(w, analysis.Causes)
	fmt.Fprintln(w)

	green.Fprintln(w, "ADVICE:")
	printList(w, analysis.Advice)
	fmt.Fprintln(w)
}

func printList(w io.Writer, items []string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "   (none)")
		return
	}
	for i, item := range items {
		fmt.Fprintf(w, "   %d. %s\n", i+1, item)
	}
}
