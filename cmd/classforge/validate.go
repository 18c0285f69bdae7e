package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"classforge/compiler/gen"
	"classforge/compiler/load"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a diagram file without generating",
	Long: `Validate parses and plans a diagram document, then reports every
irregularity the generator would degrade around: dropped duplicates,
unknown relation endpoints, name collisions.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "diagram.json", "diagram document to check")
}

func runValidate(cmd *cobra.Command, args []string) error {
	diagram, err := load.LoadFile(validateFile)
	if err != nil {
		return err
	}
	if err := diagram.Validate(); err != nil {
		return err
	}

	graph, err := gen.NewGraph(nil, diagram)
	if err != nil {
		return err
	}

	for _, warning := range graph.Warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", warning)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d classes, %d warnings\n",
		validateFile, len(graph.Nodes), len(graph.Warnings))
	return nil
}
