package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vietddude/enricher/internal/core/domain"
)

// Property labels consulted in the PubChem response.
const (
	labelFormula    = "Molecular Formula"
	labelWeight     = "Molecular Weight"
	labelAppearance = "Appearance"
)

// PubChemClient looks up compounds by name/CAS against the PubChem
// PUG REST API.
type PubChemClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPubChemClient creates a new PubChem adapter.
func NewPubChemClient(baseURL string, httpClient *http.Client) *PubChemClient {
	return &PubChemClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// pubchemResponse mirrors the slice of the PUG JSON payload we consume.
type pubchemResponse struct {
	Compounds []pubchemCompound `json:"PC_Compounds"`
}

type pubchemCompound struct {
	ID struct {
		ID struct {
			Name string `json:"name"`
		} `json:"id"`
	} `json:"id"`
	Props []pubchemProp `json:"props"`
}

type pubchemProp struct {
	URN struct {
		Label string `json:"label"`
	} `json:"urn"`
	Value struct {
		SVal string   `json:"sval"`
		FVal *float64 `json:"fval"`
	} `json:"value"`
}

// Lookup fetches the compound record for a CAS number.
//
// Only the first compound entry is consulted, and for each property
// label the first matching entry wins. Molecular weight is reported as
// text because some sources return ranges or other non-numeric forms.
func (c *PubChemClient) Lookup(ctx context.Context, cas string) (domain.SourceRecord, error) {
	endpoint := fmt.Sprintf("%s/rest/pug/compound/name/%s/JSON", c.baseURL, url.PathEscape(cas))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.SourceRecord{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.SourceRecord{}, fmt.Errorf("pubchem call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.SourceRecord{}, fmt.Errorf("pubchem status %d", resp.StatusCode)
	}

	var payload pubchemResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.SourceRecord{}, fmt.Errorf("decode response: %w", err)
	}

	if len(payload.Compounds) == 0 {
		return domain.SourceRecord{}, fmt.Errorf("pubchem: no compound entry for %s", cas)
	}
	compound := payload.Compounds[0]

	record := domain.SourceRecord{Name: compound.ID.ID.Name}
	if record.Name == "" {
		record.Name = cas
	}

	for _, prop := range compound.Props {
		switch prop.URN.Label {
		case labelFormula:
			if record.Formula == "" && prop.Value.SVal != "" {
				record.Formula = prop.Value.SVal
			}
		case labelWeight:
			if record.Weight == "" {
				if prop.Value.SVal != "" {
					record.Weight = prop.Value.SVal
				} else if prop.Value.FVal != nil {
					record.Weight = strconv.FormatFloat(*prop.Value.FVal, 'f', -1, 64)
				}
			}
		case labelAppearance:
			if record.Appearance == "" && prop.Value.SVal != "" {
				record.Appearance = prop.Value.SVal
			}
		}
	}

	return record, nil
}
