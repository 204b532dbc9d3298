package cmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/truth"
)

var vocabFormat string

// vocabCmd: truth vocab [capability...]
var vocabCmd = &cobra.Command{
	Use:   "vocab [capability...]",
	Short: "Print the proposition names, grouped by the capability that unlocks them",
	Long: `Prints every proposition a subject may call, grouped by capability.
Tools that rewrite assertions use this list as the method-name vocabulary.
Example) truth vocab --format yaml string mapping`,
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := selectGroups(truth.Vocabulary(), args)
		if err != nil {
			return err
		}
		switch vocabFormat {
		case "text":
			return writeText(cmd.OutOrStdout(), groups)
		case "yaml":
			return writeYAML(cmd.OutOrStdout(), groups)
		default:
			return fmt.Errorf("unknown format %q: want text or yaml", vocabFormat)
		}
	},
}

func init() {
	vocabCmd.Flags().StringVar(&vocabFormat, "format", "text", "Output format: text or yaml")
}

func selectGroups(groups []truth.VocabularyGroup, names []string) ([]truth.VocabularyGroup, error) {
	if len(names) == 0 {
		return groups, nil
	}
	var out []truth.VocabularyGroup
	for _, name := range names {
		i := slices.IndexFunc(groups, func(g truth.VocabularyGroup) bool { return g.Capability == name })
		if i < 0 {
			return nil, fmt.Errorf("unknown capability %q", name)
		}
		out = append(out, groups[i])
	}
	return out, nil
}

func writeText(w io.Writer, groups []truth.VocabularyGroup) error {
	for _, g := range groups {
		if _, err := fmt.Fprintf(w, "%s:\n", g.Capability); err != nil {
			return err
		}
		for _, p := range g.Propositions {
			if _, err := fmt.Fprintf(w, "  %s\n", p); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
