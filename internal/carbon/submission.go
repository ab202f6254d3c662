package carbon

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Payload keys recognized at the submission boundary.
const (
	KeyUserID  = "user_id"
	KeyInputs  = "inputs"
	KeyFactors = "factors"
)

// SubmissionKind discriminates the two accepted survey shapes.
type SubmissionKind string

const (
	KindActivity SubmissionKind = "activity"
	KindLegacy   SubmissionKind = "legacy"
)

// Submission is either an ActivitySubmission or a LegacySubmission.
type Submission interface {
	Kind() SubmissionKind
	Owner() string
	isSubmission()
}

// ActivitySubmission runs the full normalize, calculate and recommend pipeline.
type ActivitySubmission struct {
	UserID  string
	Input   ActivityInput
	Factors EmissionFactors
	// CustomFactors is set when the caller supplied its own factor table.
	CustomFactors bool
}

// Kind implements Submission.
func (ActivitySubmission) Kind() SubmissionKind { return KindActivity }

// Owner implements Submission.
func (s ActivitySubmission) Owner() string { return s.UserID }

func (ActivitySubmission) isSubmission() {}

// Estimate computes the footprint of the submission.
func (s ActivitySubmission) Estimate() Footprint {
	return Estimate(s.Input, s.Factors)
}

// LegacySubmission is the four-selector survey kept for older app versions.
type LegacySubmission struct {
	UserID          string
	HomeType        string
	TransportType   string
	ElectricityType string
	FoodType        string
}

// Kind implements Submission.
func (LegacySubmission) Kind() SubmissionKind { return KindLegacy }

// Owner implements Submission.
func (s LegacySubmission) Owner() string { return s.UserID }

func (LegacySubmission) isSubmission() {}

// ParseSubmission decides which survey shape a payload carries.
//
// A nested "inputs" object or any top-level activity field selects the activity
// pipeline; everything else is a legacy submission. Only a missing user_id is
// rejected.
func ParseSubmission(payload map[string]any) (Submission, error) {
	userID := stringValue(payload[KeyUserID])
	if userID == "" {
		return nil, ErrMissingUserID
	}

	if nested, ok := payload[KeyInputs].(map[string]any); ok {
		return newActivitySubmission(userID, nested, payload), nil
	}
	if HasActivityFields(payload) {
		return newActivitySubmission(userID, payload, payload), nil
	}

	return LegacySubmission{
		UserID:          userID,
		HomeType:        stringValue(payload[KeyHomeType]),
		TransportType:   stringValue(payload[KeyTransportType]),
		ElectricityType: stringValue(payload[KeyElectricityType]),
		FoodType:        stringValue(payload[KeyFoodType]),
	}, nil
}

func newActivitySubmission(userID string, inputs, payload map[string]any) ActivitySubmission {
	sub := ActivitySubmission{
		UserID:  userID,
		Input:   NormalizeInput(inputs),
		Factors: DefaultFactors(),
	}
	if raw, ok := payload[KeyFactors].(map[string]any); ok {
		sub.Factors = NormalizeFactors(raw)
		sub.CustomFactors = true
	}
	return sub
}

// stringValue accepts strings and JSON numbers only.
func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
