package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(root *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the catalog's category names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}

			a, err := newApp(root.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			categories, err := a.categories.Categories(cmd.Context())
			if err != nil {
				return fmt.Errorf("load categories: %w", err)
			}
			return renderCategories(cmd.OutOrStdout(), output, categories)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "output format: table, json or yaml")
	return cmd
}
