package geocode

import "errors"

var (
	ErrInvalidZip         = errors.New("CEP inválido.")
	ErrZipLookupFailed    = errors.New("Falha ao consultar ViaCEP.")
	ErrZipNotFound        = errors.New("CEP não encontrado.")
	ErrIncompleteAddress  = errors.New("ViaCEP não retornou endereço suficiente para geocodificação.")
	ErrRateLimited        = errors.New("Muitas buscas em pouco tempo. Aguarde alguns segundos e tente novamente.")
	ErrGeocodeFailed      = errors.New("Falha ao geocodificar endereço.")
	ErrEmpty              = errors.New("EMPTY")
	ErrInvalidCoordinates = errors.New("Coordenadas inválidas.")
	ErrNoCoordinates      = errors.New("Não foi possível obter coordenadas para este endereço. Tente ajustar o número ou digite a latitude/longitude manualmente.")
)
