package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"symptom-checker/internal/core"
	"symptom-checker/internal/formatter"
	"symptom-checker/internal/llm"
	"symptom-checker/pkg"
)

var (
	age          string
	gender       string
	outputFormat string
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze SYMPTOMS",
		Short: "Analyze symptoms from the terminal",
		Long: `Send symptoms to the completion provider and print the parsed summary,
possible causes and advice.

Examples:
  symptom-checker analyze "headache and fever for two days"
  symptom-checker analyze "dry cough" --age 34 --gender female -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}
	cmd.Flags().StringVar(&age, "age", "", "Age of the person with the symptoms")
	cmd.Flags().StringVar(&gender, "gender", "", "Gender of the person with the symptoms")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = fmt.Sprintf(" Asking %s...", cfg.Provider.Name)
	s.Start()

	svc := core.NewSymptomService(llm.NewOpenAIClient(cfg.Provider), zap.NewNop())
	analysis, err := svc.Analyze(cmd.Context(), pkg.SymptomQuery{Symptoms: args[0], Age: age, Gender: gender})
	s.Stop()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s\n", core.UserMessage(err, cfg.Provider.Name))
		return err
	}

	return formatter.DisplayResults(cmd.OutOrStdout(), analysis, outputFormat)
}
