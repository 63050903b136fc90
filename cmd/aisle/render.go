package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/aisle/internal/domain"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func writeJSON(w io.Writer, v any) error {
	body, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(body))
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func renderProducts(w io.Writer, format string, page *domain.ProductPage) error {
	switch format {
	case formatJSON:
		return writeJSON(w, page)
	case formatYAML:
		return writeYAML(w, page)
	}

	if len(page.Products) == 0 {
		_, err := fmt.Fprintln(w, "No products found.")
		return err
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "TITLE", "PRICE", "RATING", "CATEGORY").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, p := range page.Products {
		t.Row(
			strconv.Itoa(p.ID),
			p.Title,
			p.FormattedPrice(),
			strconv.FormatFloat(p.Rating, 'f', 2, 64),
			p.Category,
		)
	}

	_, err := fmt.Fprintf(w, "%s\n%d of %d products\n", t.Render(), len(page.Products), page.Total)
	return err
}

func renderCategories(w io.Writer, format string, categories []string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, categories)
	case formatYAML:
		return writeYAML(w, categories)
	}

	for _, c := range categories {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}
