package feed

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"storefront/internal/domain"
)

type stubCatalog struct {
	products []domain.Product
	err      error
}

func (s *stubCatalog) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

type stubSales struct {
	sales []domain.Sale
	err   error
}

func (s *stubSales) ListActive(_ context.Context) ([]domain.Sale, error) {
	return s.sales, s.err
}

func testConfig() Config {
	return Config{StoreDomain: "shop.example.com", BrandName: "Example", Currency: "PKR"}
}

func TestTikTok_HeaderAndRow(t *testing.T) {
	p1 := "p1"
	catalog := &stubCatalog{products: []domain.Product{
		{
			ID:            "p1",
			Slug:          "lawn-suit",
			Name:          "Lawn  Suit\n3 Piece",
			Description:   "Printed\tlawn",
			Price:         3499,
			Images:        []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg"},
			StockQuantity: 5,
			CategoryName:  "Clothing",
			Sizes:         []domain.ProductSize{{Name: "Small"}, {Name: "Large"}},
			Colors:        []domain.ProductColor{{Name: "Teal"}},
		},
	}}
	sales := &stubSales{sales: []domain.Sale{
		{ID: "s1", ProductID: &p1, IsActive: true, DiscountPercentage: 30},
	}}

	var buf bytes.Buffer
	writer := NewTikTokWriter(catalog, sales, testConfig())
	count, err := writer.Write(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(records))
	}

	header := records[0]
	if len(header) != 45 {
		t.Fatalf("header columns = %d, want 45", len(header))
	}
	if header[0] != "sku_id" || header[5] != "price" || header[18] != "sale_price" || header[44] != "fb_product_category" {
		t.Fatalf("unexpected header %v", header)
	}

	row := records[1]
	if len(row) != 45 {
		t.Fatalf("row columns = %d, want 45", len(row))
	}
	col := func(name string) string {
		for i, h := range header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("column %s missing", name)
		return ""
	}

	if col("sku_id") != "p1" || col("item_group_id") != "p1" {
		t.Fatalf("ids: sku=%q group=%q", col("sku_id"), col("item_group_id"))
	}
	if col("title") != "Lawn Suit 3 Piece" {
		t.Fatalf("title = %q, want whitespace collapsed", col("title"))
	}
	if col("description") != "Printed lawn" {
		t.Fatalf("description = %q", col("description"))
	}
	if col("price") != "3499 PKR" {
		t.Fatalf("price = %q", col("price"))
	}
	// 30% off 3499 = 2449.3, shown rounded to whole units.
	if col("sale_price") != "2449 PKR" {
		t.Fatalf("sale_price = %q", col("sale_price"))
	}
	if col("availability") != "in stock" {
		t.Fatalf("availability = %q", col("availability"))
	}
	if col("link") != "https://shop.example.com/product/lawn-suit" {
		t.Fatalf("link = %q", col("link"))
	}
	if col("image_link") != "a.jpg" {
		t.Fatalf("image_link = %q", col("image_link"))
	}
	if col("additional_image_link") != "b.jpg,c.jpg,d.jpg" {
		t.Fatalf("additional_image_link = %q, want at most 3 extras", col("additional_image_link"))
	}
	if col("google_product_category") != "166" {
		t.Fatalf("google_product_category = %q", col("google_product_category"))
	}
	if col("size") != "Small,Large" || col("color") != "Teal" {
		t.Fatalf("options: size=%q color=%q", col("size"), col("color"))
	}
	if col("condition") != "new" || col("gender") != "female" || col("age_group") != "adult" {
		t.Fatalf("constants: %q %q %q", col("condition"), col("gender"), col("age_group"))
	}
}

func TestTikTok_NoSaleLeavesSalePriceEmpty(t *testing.T) {
	catalog := &stubCatalog{products: []domain.Product{
		{ID: "p1", Slug: "serum", Name: "Serum", Price: 1599, CategoryName: "Unknown Category"},
	}}

	var buf bytes.Buffer
	writer := NewTikTokWriter(catalog, &stubSales{}, testConfig())
	if _, err := writer.Write(context.Background(), &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	row := records[1]
	if row[18] != "" {
		t.Fatalf("sale_price = %q, want empty without a sale", row[18])
	}
	// Unknown categories fall back to Home & Garden.
	if row[9] != "632" {
		t.Fatalf("google_product_category = %q, want 632", row[9])
	}
	if row[3] != "out of stock" {
		t.Fatalf("availability = %q", row[3])
	}
}

func TestTikTok_EscapesEmbeddedCommasAndQuotes(t *testing.T) {
	catalog := &stubCatalog{products: []domain.Product{
		{ID: "p1", Slug: "suit", Name: `Suit, "Premium" Edition`, Price: 100},
	}}

	var buf bytes.Buffer
	writer := NewTikTokWriter(catalog, &stubSales{}, testConfig())
	if _, err := writer.Write(context.Background(), &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if !strings.Contains(buf.String(), `"Suit, ""Premium"" Edition"`) {
		t.Fatalf("title not CSV-escaped:\n%s", buf.String())
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if records[1][1] != `Suit, "Premium" Edition` {
		t.Fatalf("title = %q", records[1][1])
	}
}
