package catalog

import (
	"sort"
	"strings"
)

// Filter keeps products whose category equals tag (case-insensitive, empty
// tag matches all) and whose name contains search (case-insensitive).
func Filter(products []Product, tag, search string) []Product {
	tag = strings.TrimSpace(tag)
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if tag != "" && !strings.EqualFold(p.Category, tag) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the distinct primary categories, sorted.
func Categories(products []Product) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// WithDefaultDescription fills empty descriptions for the grid view.
func WithDefaultDescription(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		if p.Description == "" {
			p.Description = DefaultDescription
		}
		out[i] = p
	}
	return out
}
