// Package geocode turns a Brazilian postal code and house number into a full
// address with coordinates, using a postal directory and a geocoder.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type PostalDirectory interface {
	Lookup(ctx context.Context, zipCode string) (*PostalAddress, error)
}

type Geocoder interface {
	Search(ctx context.Context, query string) (Coordinates, error)
}

// Address is a resolved address ready to fill a sports center form.
type Address struct {
	Street       string  `json:"street"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	ZipCode      string  `json:"zip_code"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// QueryBuilder renders one free-text geocoder query for an address.
type QueryBuilder func(a Address, number string) string

// FullQuery is "<number> <street>, <neighborhood>, <city> - <state>, <zip digits>, Brasil".
func FullQuery(a Address, number string) string {
	return fmt.Sprintf("%s %s, %s, %s - %s, %s, Brasil",
		number, a.Street, a.Neighborhood, a.City, a.State, OnlyDigits(a.ZipCode))
}

// FallbackQueries go from most to least specific.
var FallbackQueries = []QueryBuilder{
	FullQuery,
	func(a Address, number string) string {
		return fmt.Sprintf("%s %s, %s - %s, Brasil", number, a.Street, a.City, a.State)
	},
	func(a Address, _ string) string {
		return fmt.Sprintf("%s, %s, %s - %s, Brasil", a.Street, a.Neighborhood, a.City, a.State)
	},
	func(a Address, _ string) string {
		return fmt.Sprintf("%s, Brasil", OnlyDigits(a.ZipCode))
	},
}

type Resolver struct {
	directory PostalDirectory
	geocoder  Geocoder
}

func NewResolver(directory PostalDirectory, geocoder Geocoder) *Resolver {
	return &Resolver{directory: directory, geocoder: geocoder}
}

// Resolve geocodes the single full query. Geocoder errors are returned as is.
func (r *Resolver) Resolve(ctx context.Context, zipCode, number string) (*Address, error) {
	addr, err := r.address(ctx, zipCode)
	if err != nil {
		return nil, err
	}

	coords, err := r.geocoder.Search(ctx, FullQuery(*addr, strings.TrimSpace(number)))
	if err != nil {
		return nil, err
	}
	addr.Latitude, addr.Longitude = coords.Latitude, coords.Longitude
	return addr, nil
}

// ResolveWithFallback tries FallbackQueries in order. The first success wins;
// a rate limit aborts at once. When every query fails, ErrNoCoordinates.
func (r *Resolver) ResolveWithFallback(ctx context.Context, zipCode, number string) (*Address, error) {
	addr, err := r.address(ctx, zipCode)
	if err != nil {
		return nil, err
	}

	coords, err := r.firstMatch(ctx, *addr, strings.TrimSpace(number), FallbackQueries)
	if err != nil {
		return nil, err
	}
	addr.Latitude, addr.Longitude = coords.Latitude, coords.Longitude
	return addr, nil
}

func (r *Resolver) firstMatch(ctx context.Context, addr Address, number string, builders []QueryBuilder) (Coordinates, error) {
	for _, build := range builders {
		coords, err := r.geocoder.Search(ctx, build(addr, number))
		if err == nil {
			return coords, nil
		}
		if errors.Is(err, ErrRateLimited) {
			return Coordinates{}, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Coordinates{}, ctxErr
		}
	}
	return Coordinates{}, ErrNoCoordinates
}

func (r *Resolver) address(ctx context.Context, zipCode string) (*Address, error) {
	postal, err := r.directory.Lookup(ctx, zipCode)
	if err != nil {
		return nil, err
	}

	addr := Address{
		Street:       strings.TrimSpace(postal.Street),
		Neighborhood: strings.TrimSpace(postal.Neighborhood),
		City:         strings.TrimSpace(postal.City),
		State:        strings.TrimSpace(postal.State),
		ZipCode:      formatZip(OnlyDigits(zipCode)),
	}
	if addr.Street == "" || addr.City == "" || addr.State == "" {
		return nil, ErrIncompleteAddress
	}
	return &addr, nil
}

// formatZip renders eight digits as 00000-000.
func formatZip(digits string) string {
	if len(digits) != 8 {
		return digits
	}
	return digits[:5] + "-" + digits[5:]
}
