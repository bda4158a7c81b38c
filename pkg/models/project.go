// Package models contains domain types for the surveyor client.
// JSON tags carry the backend's verbatim field names.
package models

import (
	"sort"
	"strings"

	"github.com/evanterry/surveyor/pkg/jsonutil"
)

// Project identifies a survey engagement.
type Project struct {
	Number string `json:"Project Number"`
	Name   string `json:"Project Name"`
}

// Campus is a campus within a project.
type Campus struct {
	Name string `json:"Campus"`
}

// Site is a surveyable site within a project campus.
type Site struct {
	UNID     string `json:"UNID"`
	Name     string `json:"Site"`
	Standard string `json:"Standard"`

	// CostFactor is a decimal string; some agents send it as a JSON number.
	CostFactor jsonutil.FlexibleString `json:"CostFactor"`
}

// Standard is a governing accessibility code, labelled by state.
type Standard struct {
	State string `json:"State"`
	Code  string `json:"Standard"`
}

// Form identifies a question set.
type Form struct {
	Name string `json:"Form Name"`
	Code string `json:"Form Code"`
}

// UseCode is a facility-use classification.
type UseCode struct {
	Code        string `json:"Code"`
	Description string `json:"Description"`
}

// TeamResponse is the envelope returned by the team members endpoint.
type TeamResponse struct {
	Team []string `json:"Team"`
}

// UseCodeValues returns the codes sorted case-insensitively, as offered in the barrier form.
func UseCodeValues(codes []UseCode) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, c.Code)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
