package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vietddude/enricher/internal/core/domain"
)

func newVendorServer(t *testing.T, html string, status int) *VendorClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/products/") {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return NewVendorClient(srv.URL, NewHTTPClient(5*time.Second))
}

func TestVendorCategory(t *testing.T) {
	html := `<html><body>
		<a class="moreicon"> Building Blocks (1204) </a>
		<a class="moreicon">Heterocyclic Compounds (88)</a>
		<a class="other">Not a category</a>
	</body></html>`
	client := newVendorServer(t, html, http.StatusOK)

	category, err := client.Category(context.Background(), "71-43-2")
	if err != nil {
		t.Fatalf("Category failed: %v", err)
	}
	// Last plausible token wins, parenthetical stripped
	if category != "Heterocyclic Compounds" {
		t.Errorf("Expected Heterocyclic Compounds, got %q", category)
	}
}

func TestVendorCategory_FiltersImplausibleTokens(t *testing.T) {
	html := `<html><body>
		<a class="moreicon">Pyridines (12)</a>
		<a class="moreicon">This anchor text is far too long to be a category token</a>
		<a class="moreicon">   </a>
	</body></html>`
	client := newVendorServer(t, html, http.StatusOK)

	category, err := client.Category(context.Background(), "110-86-1")
	if err != nil {
		t.Fatalf("Category failed: %v", err)
	}
	if category != "Pyridines" {
		t.Errorf("Expected Pyridines, got %q", category)
	}
}

func TestVendorCategory_NoTokensDefaults(t *testing.T) {
	client := newVendorServer(t, `<html><body><p>No links here</p></body></html>`, http.StatusOK)

	category, err := client.Category(context.Background(), "0-00-0")
	if err != nil {
		t.Fatalf("Category failed: %v", err)
	}
	if category != domain.DefaultCategory {
		t.Errorf("Expected default category, got %q", category)
	}
}

func TestVendorCategory_ErrorsCarryIdentifier(t *testing.T) {
	client := newVendorServer(t, "", http.StatusBadGateway)

	_, err := client.Category(context.Background(), "123-45-6")
	if err == nil {
		t.Fatal("Expected error on bad status")
	}
	if !strings.Contains(err.Error(), "123-45-6") {
		t.Errorf("Expected error to carry the identifier, got %v", err)
	}
}
