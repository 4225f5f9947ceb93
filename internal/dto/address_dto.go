package dto

type AddressLookupQuery struct {
	ZipCode  string `query:"zip_code" json:"zip_code" validate:"required"`
	Number   string `query:"number" json:"number" validate:"required,filled,max=20"`
	Fallback bool   `query:"fallback" json:"fallback"`
}
