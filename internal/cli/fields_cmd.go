package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zoobzio/metricsql"
	"github.com/zoobzio/metricsql/internal/loader"
)

// fieldInfo describes one selectable field of an explore.
type fieldInfo struct {
	ID    string `json:"id"`
	Field string `json:"field"`
	Kind  string `json:"kind"`
	Type  string `json:"type"`
}

func newFieldsCmd(a *app) *cobra.Command {
	var explorePath string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the dimensions and measures of an explore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			explore, err := loader.LoadExplore(explorePath)
			if err != nil {
				return fmt.Errorf("load explore: %w", err)
			}

			fields := listFields(explore)
			a.entry(cmd).WithField("fields", len(fields)).Debug("listed explore fields")

			if getOutputFormat(cmd) == "json" {
				return printJSON(cmd.OutOrStdout(), fields)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFIELD\tKIND\tTYPE")
			for _, f := range fields {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.ID, f.Field, f.Kind, f.Type)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&explorePath, "explore", "", "Path to the explore YAML file")
	_ = cmd.MarkFlagRequired("explore")

	return cmd
}

// listFields returns every dimension and measure sorted by field id.
func listFields(explore *metricsql.Explore) []fieldInfo {
	var fields []fieldInfo
	for _, t := range explore.Tables {
		for name, d := range t.Dimensions {
			ref := metricsql.F(t.Name, name)
			fields = append(fields, fieldInfo{ID: ref.ID(), Field: ref.String(), Kind: "dimension", Type: string(d.Type)})
		}
		for name, m := range t.Measures {
			ref := metricsql.F(t.Name, name)
			typ := ""
			if m.Type != nil {
				typ = m.Type.String()
			}
			fields = append(fields, fieldInfo{ID: ref.ID(), Field: ref.String(), Kind: "measure", Type: typ})
		}
	}
	sort.Slice(fields, func(i, j int) bool {
		if fields[i].ID != fields[j].ID {
			return fields[i].ID < fields[j].ID
		}
		return fields[i].Field < fields[j].Field
	})
	return fields
}
