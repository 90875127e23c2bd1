package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

const defaultGraphURL = "https://graph.facebook.com/v21.0"

// MetaSyncer pushes the catalog to a Meta (Facebook/Instagram) commerce
// catalog through the Graph API batch endpoint.
type MetaSyncer struct {
	products    catalogReader
	sales       saleReader
	cfg         Config
	catalogID   string
	accessToken string
	graphURL    string
	client      *http.Client
	logger      *log.Logger
}

type MetaOption func(*MetaSyncer)

// WithGraphURL overrides the Graph API base URL, mainly for tests.
func WithGraphURL(u string) MetaOption {
	return func(m *MetaSyncer) { m.graphURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(c *http.Client) MetaOption {
	return func(m *MetaSyncer) { m.client = c }
}

func NewMetaSyncer(products catalogReader, sales saleReader, cfg Config, catalogID, accessToken string, logger *log.Logger, opts ...MetaOption) *MetaSyncer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := &MetaSyncer{
		products:    products,
		sales:       sales,
		cfg:         cfg,
		catalogID:   catalogID,
		accessToken: accessToken,
		graphURL:    defaultGraphURL,
		client:      http.DefaultClient,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type metaItemData struct {
	Name                  string `json:"name"`
	Description           string `json:"description"`
	URL                   string `json:"url"`
	ImageURL              string `json:"image_url"`
	Currency              string `json:"currency"`
	Price                 int64  `json:"price"`
	SalePrice             int64  `json:"sale_price,omitempty"`
	Availability          string `json:"availability"`
	Condition             string `json:"condition"`
	Brand                 string `json:"brand"`
	GoogleProductCategory string `json:"google_product_category"`
}

type metaRequest struct {
	Method     string       `json:"method"`
	RetailerID string       `json:"retailer_id"`
	Data       metaItemData `json:"data"`
}

type metaBatchResponse struct {
	Handles          []string `json:"handles"`
	ValidationStatus []struct {
		RetailerID string `json:"retailer_id"`
		Errors     []struct {
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"validation_status"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Sync upserts every product into the remote catalog and returns the number
// of items sent. Validation warnings on individual items are logged, not
// treated as failures.
func (m *MetaSyncer) Sync(ctx context.Context) (int, error) {
	if m.catalogID == "" || m.accessToken == "" {
		return 0, fmt.Errorf("meta sync: catalog id and access token required")
	}

	products, err := m.products.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("load products: %w", err)
	}
	sales, err := m.sales.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("load sales: %w", err)
	}

	requests := make([]metaRequest, 0, len(products))
	for _, p := range products {
		requests = append(requests, m.request(p, sales))
	}
	if len(requests) == 0 {
		return 0, nil
	}

	payload, err := json.Marshal(requests)
	if err != nil {
		return 0, err
	}

	form := url.Values{}
	form.Set("requests", string(payload))
	form.Set("access_token", m.accessToken)

	endpoint := fmt.Sprintf("%s/%s/batch", m.graphURL, m.catalogID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("meta sync: %w", err)
	}
	defer resp.Body.Close()

	var parsed metaBatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("meta sync: decode response: %w", err)
	}
	if parsed.Error != nil {
		return 0, fmt.Errorf("meta sync: %s", parsed.Error.Message)
	}
	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("meta sync: status %d", resp.StatusCode)
	}

	for _, vs := range parsed.ValidationStatus {
		for _, e := range vs.Errors {
			m.logger.Printf("meta sync: item %s: %s", vs.RetailerID, e.Message)
		}
	}
	return len(requests), nil
}

func (m *MetaSyncer) request(p domain.Product, sales []domain.Sale) metaRequest {
	productSale, globalSale := pricing.Select(sales, p.ID)
	res := pricing.Resolve(p.Price, productSale, globalSale, true)

	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0]
	}

	data := metaItemData{
		Name:                  cleanText(p.Name, 0),
		Description:           cleanText(p.Description, 5000),
		URL:                   productURL(m.cfg.StoreDomain, p.Slug),
		ImageURL:              image,
		Currency:              m.cfg.Currency,
		Price:                 cents(p.Price),
		Availability:          availability(p.StockQuantity),
		Condition:             "new",
		Brand:                 m.cfg.BrandName,
		GoogleProductCategory: googleCategory(p.CategoryName),
	}
	if res.Discount != nil {
		data.SalePrice = cents(res.FinalPrice)
	}

	return metaRequest{
		Method:     "CREATE",
		RetailerID: p.ID,
		Data:       data,
	}
}

// cents converts a major-unit price into the minor-unit integer the Graph
// API expects.
func cents(price float64) int64 {
	return int64(math.Round(price * 100))
}
