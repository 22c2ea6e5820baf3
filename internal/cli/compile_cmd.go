package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoobzio/metricsql"
	"github.com/zoobzio/metricsql/internal/loader"
)

func newCompileCmd(a *app) *cobra.Command {
	var (
		explorePath string
		queryPath   string
	)

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a metric query to SQL",
		Long:  "Loads an explore and a metric query from YAML files and prints the compiled SELECT statement.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := a.entry(cmd)

			explore, err := loader.LoadExplore(explorePath)
			if err != nil {
				return fmt.Errorf("load explore: %w", err)
			}
			q, err := loader.LoadQuery(queryPath, explore)
			if err != nil {
				return fmt.Errorf("load query: %w", err)
			}
			log.WithField("explore", explore.Name).Debug("loaded explore and query")

			compiler := metricsql.New(metricsql.WithLogger(log))
			result, err := compiler.Render(q)
			if err != nil {
				return fmt.Errorf("compile: %w", err)
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"sql":     result.SQL,
					"columns": result.Columns,
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.SQL)
			return err
		},
	}

	cmd.Flags().StringVar(&explorePath, "explore", "", "Path to the explore YAML file")
	cmd.Flags().StringVar(&queryPath, "query", "", "Path to the metric query YAML file")
	_ = cmd.MarkFlagRequired("explore")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}
