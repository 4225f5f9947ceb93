package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// PostalAddress is the directory entry of a CEP.
type PostalAddress struct {
	ZipCode      string      `json:"cep"`
	Street       string      `json:"logradouro"`
	Complement   string      `json:"complemento"`
	Neighborhood string      `json:"bairro"`
	City         string      `json:"localidade"`
	State        string      `json:"uf"`
	Erro         interface{} `json:"erro,omitempty"`
}

// notFound reports ViaCEP's error flag, sent either as a bool or as "true".
func (a *PostalAddress) notFound() bool {
	switch v := a.Erro.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// ViaCEP looks postal codes up in the viacep.com.br directory.
type ViaCEP struct {
	baseURL string
	client  *http.Client
}

func NewViaCEP(baseURL string, timeout time.Duration) *ViaCEP {
	return &ViaCEP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (v *ViaCEP) Lookup(ctx context.Context, zipCode string) (*PostalAddress, error) {
	zip := OnlyDigits(zipCode)
	if len(zip) != 8 {
		return nil, ErrInvalidZip
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/ws/%s/json/", v.baseURL, zip), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build viacep request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrZipLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ErrZipLookupFailed
	}

	var addr PostalAddress
	if err := json.NewDecoder(resp.Body).Decode(&addr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrZipLookupFailed, err)
	}
	if addr.notFound() {
		return nil, ErrZipNotFound
	}
	return &addr, nil
}

// OnlyDigits strips everything but 0-9.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
