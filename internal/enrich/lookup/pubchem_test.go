package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const pubchemPayload = `{
	"PC_Compounds": [
		{
			"id": {"id": {"name": "Benzene"}},
			"props": [
				{"urn": {"label": "Molecular Formula"}, "value": {"sval": "C6H6"}},
				{"urn": {"label": "Molecular Formula"}, "value": {"sval": "DUPLICATE"}},
				{"urn": {"label": "Molecular Weight"}, "value": {"fval": 78.11}},
				{"urn": {"label": "Appearance"}, "value": {"sval": "Colorless liquid"}}
			]
		}
	]
}`

func newPubChemServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *PubChemClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewPubChemClient(srv.URL, NewHTTPClient(5*time.Second))
}

func TestPubChemLookup(t *testing.T) {
	var gotPath string
	_, client := newPubChemServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(pubchemPayload))
	})

	record, err := client.Lookup(context.Background(), "71-43-2")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if gotPath != "/rest/pug/compound/name/71-43-2/JSON" {
		t.Errorf("Unexpected request path: %s", gotPath)
	}
	if record.Name != "Benzene" {
		t.Errorf("Expected name Benzene, got %q", record.Name)
	}
	// First entry per label wins, duplicates are not accumulated
	if record.Formula != "C6H6" {
		t.Errorf("Expected formula C6H6, got %q", record.Formula)
	}
	if record.Weight != "78.11" {
		t.Errorf("Expected weight 78.11 coalesced from fval, got %q", record.Weight)
	}
	if record.Appearance != "Colorless liquid" {
		t.Errorf("Expected appearance, got %q", record.Appearance)
	}
}

func TestPubChemLookup_WeightPrefersSval(t *testing.T) {
	payload := `{"PC_Compounds": [{"id": {"id": {"name": "X"}}, "props": [
		{"urn": {"label": "Molecular Weight"}, "value": {"sval": "180.1-182.4", "fval": 181.0}}
	]}]}`
	_, client := newPubChemServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})

	record, err := client.Lookup(context.Background(), "x")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if record.Weight != "180.1-182.4" {
		t.Errorf("Expected range string preserved, got %q", record.Weight)
	}
}

func TestPubChemLookup_NameFallsBackToCAS(t *testing.T) {
	payload := `{"PC_Compounds": [{"id": {"id": {}}, "props": []}]}`
	_, client := newPubChemServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	})

	record, err := client.Lookup(context.Background(), "50-00-0")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if record.Name != "50-00-0" {
		t.Errorf("Expected CAS fallback name, got %q", record.Name)
	}
}

func TestPubChemLookup_NonSuccessStatus(t *testing.T) {
	_, client := newPubChemServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := client.Lookup(context.Background(), "0-00-0"); err == nil {
		t.Fatal("Expected error on non-200 status")
	}
}

func TestPubChemLookup_EmptyCompoundList(t *testing.T) {
	_, client := newPubChemServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"PC_Compounds": []}`))
	})

	if _, err := client.Lookup(context.Background(), "0-00-0"); err == nil {
		t.Fatal("Expected error on missing compound entry")
	}
}

func TestPubChemLookup_MalformedPayload(t *testing.T) {
	_, client := newPubChemServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	if _, err := client.Lookup(context.Background(), "0-00-0"); err == nil {
		t.Fatal("Expected error on malformed payload")
	}
}
