package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

// tiktokHeaders is the standard 45-column TikTok catalog header row.
var tiktokHeaders = []string{
	"sku_id",
	"title",
	"description",
	"availability",
	"condition",
	"price",
	"link",
	"image_link",
	"brand",
	"google_product_category",
	"product_type",
	"item_group_id",
	"size",
	"color",
	"gender",
	"age_group",
	"material",
	"pattern",
	"sale_price",
	"additional_image_link",
	"custom_label_0",
	"custom_label_1",
	"custom_label_2",
	"custom_label_3",
	"custom_label_4",
	"shipping",
	"tax",
	"shipping_weight",
	"shipping_height",
	"shipping_width",
	"shipping_length",
	"shipping_label",
	"multipack",
	"is_bundle",
	"adult",
	"identifier_exists",
	"gtin",
	"mpn",
	"ios_url",
	"ios_app_store_id",
	"ios_app_name",
	"android_url",
	"android_package",
	"android_app_name",
	"fb_product_category",
}

// TikTokWriter renders the catalog as a TikTok product feed CSV.
type TikTokWriter struct {
	products catalogReader
	sales    saleReader
	cfg      Config
}

func NewTikTokWriter(products catalogReader, sales saleReader, cfg Config) *TikTokWriter {
	return &TikTokWriter{products: products, sales: sales, cfg: cfg}
}

// Write streams the feed to w and returns the number of product rows.
func (t *TikTokWriter) Write(ctx context.Context, w io.Writer) (int, error) {
	products, err := t.products.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("load products: %w", err)
	}
	sales, err := t.sales.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("load sales: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(tiktokHeaders); err != nil {
		return 0, err
	}
	for _, p := range products {
		if err := cw.Write(t.row(p, sales)); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(products), cw.Error()
}

func (t *TikTokWriter) row(p domain.Product, sales []domain.Sale) []string {
	productSale, globalSale := pricing.Select(sales, p.ID)
	res := pricing.Resolve(p.Price, productSale, globalSale, true)

	salePrice := ""
	if res.Discount != nil {
		// Whole currency units: the feed shows no minor-unit fractions.
		salePrice = fmt.Sprintf("%.0f %s", pricing.DisplayPrice(res.FinalPrice, 0), t.cfg.Currency)
	}

	mainImage := ""
	if len(p.Images) > 0 {
		mainImage = p.Images[0]
	}
	additionalImages := ""
	if len(p.Images) > 1 {
		end := len(p.Images)
		if end > 4 {
			end = 4
		}
		additionalImages = strings.Join(p.Images[1:end], ",")
	}

	sizes := make([]string, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, s.Name)
	}
	colors := make([]string, 0, len(p.Colors))
	for _, c := range p.Colors {
		colors = append(colors, c.Name)
	}

	weight := ""
	if p.WeightKG != nil {
		weight = strconv.FormatFloat(*p.WeightKG, 'f', -1, 64) + " kg"
	}

	return []string{
		p.ID, // sku_id
		cleanText(p.Name, 0),
		cleanText(p.Description, 5000),
		availability(p.StockQuantity),
		"new", // condition
		strconv.FormatFloat(p.Price, 'f', -1, 64) + " " + t.cfg.Currency,
		productURL(t.cfg.StoreDomain, p.Slug),
		mainImage,
		t.cfg.BrandName,
		googleCategory(p.CategoryName),
		p.CategoryName, // product_type
		p.ID,           // item_group_id: variants are not exploded into rows
		strings.Join(sizes, ","),
		strings.Join(colors, ","),
		"female", // gender
		"adult",  // age_group
		"",       // material
		"",       // pattern
		salePrice,
		additionalImages,
		"", "", "", "", "", // custom_label_0..4
		"", // shipping
		"", // tax
		weight,
		"", "", "", // shipping dimensions
		"",         // shipping_label
		"",         // multipack
		"",         // is_bundle
		"no",       // adult
		"no",       // identifier_exists
		"",         // gtin
		"",         // mpn
		"", "", "", // ios
		"", "", "", // android
		"", // fb_product_category
	}
}
