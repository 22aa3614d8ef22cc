package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/tagset"
)

func newTagsCmd(a *app) *cobra.Command {
	var (
		category string
		asYAML   bool
	)

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tag table",
		Long: `List every known tag code with its category, coarse POS and description.

--yaml prints the table in the format accepted by --tagset, which is a
convenient starting point for a custom table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tags, err := a.tagset()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asYAML {
				data, err := tagset.Marshal(tags)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			var cats []model.Category
			if category != "" {
				c, ok := model.ParseCategory(category)
				if !ok {
					return fmt.Errorf("unknown category %q (want pos or fine)", category)
				}
				cats = append(cats, c)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tCATEGORY\tCOARSE\tDESCRIPTION")
			for _, e := range tags.Entries(cats...) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Code, e.Category, e.Coarse, e.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list pos or fine tags")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the table as YAML")
	return cmd
}
