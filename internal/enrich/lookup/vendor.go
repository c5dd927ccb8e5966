package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vietddude/enricher/internal/core/domain"
)

// maxCategoryLen filters out anchor texts that are clearly not category
// tokens (long marketing copy, breadcrumb trails).
const maxCategoryLen = 30

// VendorClient scrapes the vendor product page for category links. The
// markup contract is brittle, so everything page-specific stays behind
// this adapter.
type VendorClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewVendorClient creates a new vendor category adapter.
func NewVendorClient(baseURL string, httpClient *http.Client) *VendorClient {
	return &VendorClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Category returns the most specific plausible category listed on the
// product page, or the default category when none is found.
func (c *VendorClient) Category(ctx context.Context, cas string) (string, error) {
	endpoint := fmt.Sprintf("%s/products/%s.html", c.baseURL, url.PathEscape(cas))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("vendor category for %s: %w", cas, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("vendor category for %s: %w", cas, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vendor category for %s: status %d", cas, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("vendor category for %s: parse: %w", cas, err)
	}

	var tokens []string
	doc.Find("a.moreicon").Each(func(_ int, sel *goquery.Selection) {
		token := cleanCategoryToken(sel.Text())
		if token != "" {
			tokens = append(tokens, token)
		}
	})

	if len(tokens) == 0 {
		return domain.DefaultCategory, nil
	}
	// The page lists categories general-first; the last one is the most
	// specific.
	return tokens[len(tokens)-1], nil
}

// cleanCategoryToken strips trailing parenthetical text (counts, notes)
// and whitespace, returning "" for implausible tokens.
func cleanCategoryToken(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(trimmed) >= maxCategoryLen {
		return ""
	}
	if idx := strings.Index(trimmed, "("); idx >= 0 {
		trimmed = strings.TrimSpace(trimmed[:idx])
	}
	return trimmed
}
