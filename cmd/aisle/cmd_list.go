package main

import (
	"context"
	"fmt"

	"github.com/mmcdole/aisle/internal/domain"
	"github.com/mmcdole/aisle/internal/filter"
	"github.com/mmcdole/aisle/internal/search"
	"github.com/spf13/cobra"
)

type listOptions struct {
	category string
	search   string
	sort     string
	output   string
}

func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the products matching a filter",
		Long: `Fetch the catalog once and print the products.

--category accepts any unambiguous part of a category name. When both
--category and --search are given the search term is ignored, as in the
interactive browser.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "category name or unambiguous part of one")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "free-text search term")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "price order: asc or desc")
	cmd.Flags().StringVarP(&opts.output, "output", "o", formatTable, "output format: table, json or yaml")
	return cmd
}

func runList(cmd *cobra.Command, root *rootOptions, opts *listOptions) error {
	if err := validateFormat(opts.output); err != nil {
		return err
	}
	order, err := domain.ParseSortOrder(opts.sort)
	if err != nil {
		return err
	}

	a, err := newApp(root.configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	category, err := resolveCategory(cmd.Context(), a, opts.category)
	if err != nil {
		return err
	}

	store := filter.NewStore()
	store.Update(func(domain.Filters) domain.Filters {
		return domain.Filters{
			SelectedCategory: category,
			SearchTerm:       opts.search,
			SortOrder:        order,
		}
	})

	state, err := fetchOnce(cmd.Context(), a, store)
	if err != nil {
		return err
	}
	return renderProducts(cmd.OutOrStdout(), opts.output, state.Page)
}

func resolveCategory(ctx context.Context, a *app, input string) (string, error) {
	if input == "" {
		return "", nil
	}
	categories, err := a.categories.Categories(ctx)
	if err != nil {
		return "", fmt.Errorf("load categories: %w", err)
	}
	return search.ResolveCategory(input, categories)
}

// fetchOnce runs the fetch lifecycle for the store's filters and waits for
// it to settle
func fetchOnce(ctx context.Context, a *app, store *filter.Store) (domain.FetchState, error) {
	fetcher := a.newFetcher()
	defer fetcher.Close()

	unbind := fetcher.Bind(store)
	defer unbind()

	done := make(chan struct{})
	go func() {
		fetcher.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		fetcher.Close()
		<-done
		return domain.FetchState{}, ctx.Err()
	}

	state := fetcher.State()
	a.logger.Info("list fetched", "url", state.Query.URL(), "status", state.Status.String(), "requestID", state.RequestID)
	if state.Status == domain.FetchError {
		return state, fmt.Errorf("%s: %w", domain.GenericErrorMessage, state.Err)
	}
	return state, nil
}
