package dto

type CreateSportsCenterRequest struct {
	Name         string   `json:"name" validate:"required,filled,max=255"`
	Phone        *string  `json:"phone" validate:"omitnil,max=20"`
	Street       string   `json:"street" validate:"required,filled,max=255"`
	Number       string   `json:"number" validate:"required,filled,max=20"`
	Complement   *string  `json:"complement" validate:"omitnil,max=255"`
	Neighborhood string   `json:"neighborhood" validate:"required,filled,max=255"`
	City         string   `json:"city" validate:"required,filled,max=255"`
	State        string   `json:"state" validate:"required,len=2"`
	ZipCode      string   `json:"zip_code" validate:"required,filled,max=9"`
	Latitude     *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// UpdateSportsCenterRequest only carries the keys present in the payload.
// phone and complement may be cleared with null; the other keys may not.
type UpdateSportsCenterRequest struct {
	Name         Optional[string]  `json:"name" validate:"omitnil,filled,max=255"`
	Phone        Optional[string]  `json:"phone" validate:"omitnil,max=20"`
	Street       Optional[string]  `json:"street" validate:"omitnil,filled,max=255"`
	Number       Optional[string]  `json:"number" validate:"omitnil,filled,max=20"`
	Complement   Optional[string]  `json:"complement" validate:"omitnil,max=255"`
	Neighborhood Optional[string]  `json:"neighborhood" validate:"omitnil,filled,max=255"`
	City         Optional[string]  `json:"city" validate:"omitnil,filled,max=255"`
	State        Optional[string]  `json:"state" validate:"omitnil,len=2"`
	ZipCode      Optional[string]  `json:"zip_code" validate:"omitnil,filled,max=9"`
	Latitude     Optional[float64] `json:"latitude" validate:"omitnil,gte=-90,lte=90"`
	Longitude    Optional[float64] `json:"longitude" validate:"omitnil,gte=-180,lte=180"`
}

// NulledRequired lists the non-nullable keys that were sent as null.
func (r *UpdateSportsCenterRequest) NulledRequired() []string {
	var keys []string
	for _, f := range []struct {
		key     string
		cleared bool
	}{
		{"name", r.Name.Cleared()},
		{"street", r.Street.Cleared()},
		{"number", r.Number.Cleared()},
		{"neighborhood", r.Neighborhood.Cleared()},
		{"city", r.City.Cleared()},
		{"state", r.State.Cleared()},
		{"zip_code", r.ZipCode.Cleared()},
		{"latitude", r.Latitude.Cleared()},
		{"longitude", r.Longitude.Cleared()},
	} {
		if f.cleared {
			keys = append(keys, f.key)
		}
	}
	return keys
}
