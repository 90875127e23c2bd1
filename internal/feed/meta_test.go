package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain"
)

func TestMetaSync_BuildsBatchRequests(t *testing.T) {
	var gotPath string
	var gotRequests []metaRequest
	var gotToken string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotToken = r.PostFormValue("access_token")
		if err := json.Unmarshal([]byte(r.PostFormValue("requests")), &gotRequests); err != nil {
			t.Errorf("decode requests: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"handles":["h1"]}`))
	}))
	defer srv.Close()

	p1 := "p1"
	catalog := &stubCatalog{products: []domain.Product{
		{
			ID:            "p1",
			Slug:          "lawn-suit",
			Name:          "Lawn Suit",
			Description:   "Printed lawn",
			Price:         3499.5,
			Images:        []string{"a.jpg"},
			StockQuantity: 5,
			CategoryName:  "Clothing",
		},
		{ID: "p2", Slug: "serum", Name: "Serum", Price: 1599},
	}}
	sales := &stubSales{sales: []domain.Sale{
		{ID: "s1", ProductID: &p1, IsActive: true, DiscountPercentage: 30},
	}}

	syncer := NewMetaSyncer(catalog, sales, testConfig(), "catalog-1", "token-1", nil, WithGraphURL(srv.URL))
	count, err := syncer.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	if gotPath != "/catalog-1/batch" {
		t.Fatalf("path = %q, want /catalog-1/batch", gotPath)
	}
	if gotToken != "token-1" {
		t.Fatalf("access_token = %q", gotToken)
	}
	if len(gotRequests) != 2 {
		t.Fatalf("requests = %d, want 2", len(gotRequests))
	}

	first := gotRequests[0]
	if first.Method != "CREATE" || first.RetailerID != "p1" {
		t.Fatalf("request = %+v", first)
	}
	if first.Data.Price != 349950 {
		t.Fatalf("price = %d cents, want 349950", first.Data.Price)
	}
	// 30% off 3499.5 = 2449.65 -> 244965 cents.
	if first.Data.SalePrice != 244965 {
		t.Fatalf("sale_price = %d cents, want 244965", first.Data.SalePrice)
	}
	if first.Data.URL != "https://shop.example.com/product/lawn-suit" || first.Data.Currency != "PKR" {
		t.Fatalf("data = %+v", first.Data)
	}

	second := gotRequests[1]
	if second.Data.SalePrice != 0 {
		t.Fatalf("sale_price = %d, want omitted without a sale", second.Data.SalePrice)
	}
	if second.Data.Availability != "out of stock" {
		t.Fatalf("availability = %q", second.Data.Availability)
	}
}

func TestMetaSync_GraphErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer srv.Close()

	catalog := &stubCatalog{products: []domain.Product{{ID: "p1", Price: 100}}}
	syncer := NewMetaSyncer(catalog, &stubSales{}, testConfig(), "catalog-1", "bad-token", nil, WithGraphURL(srv.URL))

	if _, err := syncer.Sync(context.Background()); err == nil {
		t.Fatal("expected error from graph failure")
	}
}

func TestMetaSync_RequiresCredentials(t *testing.T) {
	catalog := &stubCatalog{products: []domain.Product{{ID: "p1"}}}
	syncer := NewMetaSyncer(catalog, &stubSales{}, testConfig(), "", "", nil)

	if _, err := syncer.Sync(context.Background()); err == nil {
		t.Fatal("expected error without credentials")
	}
}
