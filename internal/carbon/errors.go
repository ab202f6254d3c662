package carbon

import "errors"

var (
	// ErrMissingUserID is returned when a submission has no owning user.
	ErrMissingUserID = errors.New("user_id is required")

	// ErrInvalidMix indicates the species mix shares are malformed.
	ErrInvalidMix = errors.New("invalid species mix")

	// ErrUnknownSpecies indicates the mix references a species missing from the catalog.
	ErrUnknownSpecies = errors.New("unknown species")

	// ErrInvalidSpecies indicates a catalog entry cannot be used for sizing.
	ErrInvalidSpecies = errors.New("invalid species profile")
)
