package plantation

import "errors"

// Validation errors surfaced to clients as 400 responses.
var (
	ErrMissingUserID       = errors.New("user_id is required")
	ErrMissingPlantName    = errors.New("plant_name is required")
	ErrMissingLocationName = errors.New("location_name is required")
	ErrMissingLookupKey    = errors.New("certificate_id or user_id is required")
	ErrMissingCertificate  = errors.New("certificate_id is required")
	ErrMissingQRCode       = errors.New("qr_code is required")
	ErrInvalidPlantsFormat = errors.New("invalid plants format, expected JSON array")
	ErrPlantsNotArray      = errors.New("plants must be an array")
)

// IsValidation reports whether err is one of the client-facing validation errors.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrMissingUserID,
		ErrMissingPlantName,
		ErrMissingLocationName,
		ErrMissingLookupKey,
		ErrMissingCertificate,
		ErrMissingQRCode,
		ErrInvalidPlantsFormat,
		ErrPlantsNotArray,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
