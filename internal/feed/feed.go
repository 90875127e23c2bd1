// Package feed exports the product catalog to advertising platforms: a
// TikTok catalog CSV and a Meta Catalog batch sync. Both price their rows
// through the shared sale resolver so a feed can never drift from the
// storefront's displayed prices.
package feed

import (
	"context"
	"strings"

	"storefront/internal/domain"
)

// Config carries the store identity stamped onto every feed row.
type Config struct {
	StoreDomain string
	BrandName   string
	Currency    string
}

type catalogReader interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type saleReader interface {
	ListActive(ctx context.Context) ([]domain.Sale, error)
}

// googleCategoryMap maps store category names to Google Product Taxonomy IDs.
var googleCategoryMap = map[string]string{
	"Home & Kitchen": "632",
	"Electronics":    "222",
	"Clothing":       "166",
	"Beauty":         "469",
	"Sports":         "499",
	"Toys":           "1253",
	"Books":          "783",
	"Jewelry":        "188",
	"Furniture":      "436",
	"Office":         "922",
}

// googleCategory falls back to Home & Garden for unknown categories.
func googleCategory(name string) string {
	if id, ok := googleCategoryMap[name]; ok {
		return id
	}
	return "632"
}

func productURL(domainName, slug string) string {
	return "https://" + domainName + "/product/" + slug
}

func availability(stock int) string {
	if stock > 0 {
		return "in stock"
	}
	return "out of stock"
}

// cleanText collapses runs of whitespace (tabs and newlines included) and
// caps the result at max runes.
func cleanText(s string, max int) string {
	out := strings.Join(strings.Fields(s), " ")
	if max > 0 {
		runes := []rune(out)
		if len(runes) > max {
			out = string(runes[:max])
		}
	}
	return out
}
