package models

import (
	"encoding/base64"
	"fmt"
	"slices"
	"strings"

	"github.com/evanterry/surveyor/pkg/apperrors"
)

// DOJCodes are the fixed DOJ priority codes a barrier can carry.
var DOJCodes = []string{"1", "2", "3", "4"}

// SeverityCodes are the fixed severity codes a barrier can carry.
var SeverityCodes = []string{"A", "B", "C", "D", "E", "F", "G", "H", "X"}

// Barrier is a recorded non-compliance submitted to the backend.
// SurveyorNotes is always sent, as "" when empty. Photos are base64 JPEG payloads.
type Barrier struct {
	QuestionID        string   `json:"questionID"`
	Location          string   `json:"location"`
	UseCode           string   `json:"useCode"`
	DOJCode           string   `json:"dojCode"`
	SeverityCode      string   `json:"severityCode"`
	ExistingCondition string   `json:"existingCondition"`
	SurveyorNotes     string   `json:"surveyorNotes"`
	Photos            []string `json:"photos"`
}

// Validate checks required fields and the fixed code lists.
func (b Barrier) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"question id", b.QuestionID},
		{"location", b.Location},
		{"use code", b.UseCode},
		{"DOJ code", b.DOJCode},
		{"severity code", b.SeverityCode},
		{"existing condition", b.ExistingCondition},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", apperrors.ErrInvalidBarrier, f.name)
		}
	}

	if !slices.Contains(DOJCodes, b.DOJCode) {
		return fmt.Errorf("%w: unknown DOJ code %q", apperrors.ErrInvalidBarrier, b.DOJCode)
	}
	if !slices.Contains(SeverityCodes, b.SeverityCode) {
		return fmt.Errorf("%w: unknown severity code %q", apperrors.ErrInvalidBarrier, b.SeverityCode)
	}
	return nil
}

// EncodePhotos base64-encodes raw JPEG payloads, skipping empty ones.
// The result is never nil so the payload always carries a photos array.
func EncodePhotos(photos [][]byte) []string {
	out := make([]string, 0, len(photos))
	for _, p := range photos {
		if len(p) == 0 {
			continue
		}
		out = append(out, base64.StdEncoding.EncodeToString(p))
	}
	return out
}
