package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"word-explainer/internal/explainer"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newExplainCommand() *cobra.Command {
	var (
		nativeLanguage string
		learningStyle  string
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "explain WORD",
		Short: "Explain a single word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := strings.TrimSpace(args[0])
			if word == "" {
				return errors.New("word must not be empty")
			}

			exp, _, err := newExplainer(cmd.Context())
			if err != nil {
				return err
			}

			result, err := exp.GenerateExplanation(cmd.Context(), word, nativeLanguage, learningStyle)
			if err != nil {
				return err
			}

			if asJSON {
				return writeExplanationJSON(cmd.OutOrStdout(), result)
			}
			printExplanation(cmd.OutOrStdout(), result)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&nativeLanguage, "native-language", "l", explainer.DefaultNativeLanguage, "language of the definition")
	flags.StringVarP(&learningStyle, "learning-style", "s", explainer.DefaultLearningStyle, "approach used for the mnemonic, e.g. analogy, story, rhyme")
	flags.BoolVar(&asJSON, "json", false, "print the explanation as JSON")
	return cmd
}

func printExplanation(w io.Writer, exp explainer.Explanation) {
	label := color.New(color.FgCyan, color.Bold)
	for _, field := range []struct{ name, value string }{
		{"Word", exp.Word},
		{"Definition", exp.Definition},
		{"Mnemonic", exp.Mnemonic},
		{"Example", exp.Example},
	} {
		label.Fprintf(w, "%s:", field.name)
		fmt.Fprintf(w, " %s\n", field.value)
	}
}

func writeExplanationJSON(w io.Writer, exp explainer.Explanation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exp)
}
