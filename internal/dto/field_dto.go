package dto

type CreateFieldRequest struct {
	Name         string   `json:"name" validate:"required,filled,max=255"`
	PricePerHour *float64 `json:"price_per_hour" validate:"omitnil,gte=0"`
}

// UpdateFieldRequest: price_per_hour may be cleared with null, name may not.
type UpdateFieldRequest struct {
	Name         Optional[string]  `json:"name" validate:"omitnil,filled,max=255"`
	PricePerHour Optional[float64] `json:"price_per_hour" validate:"omitnil,gte=0"`
}

func (r *UpdateFieldRequest) NulledRequired() []string {
	if r.Name.Cleared() {
		return []string{"name"}
	}
	return nil
}
