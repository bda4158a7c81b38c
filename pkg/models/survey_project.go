package models

import (
	"strings"
	"time"
)

// SurveyProject is the survey being conducted: where, under which standard, and by whom.
// SurveyDate, TeamLead and Team are filled in by the second setup step.
type SurveyProject struct {
	Project    string `json:"project"`
	Campus     string `json:"campus"`
	Site       string `json:"site"`
	UNID       string `json:"unid"`
	Standard   string `json:"standard"`
	CostFactor string `json:"costFactor"`

	SurveyDate *time.Time `json:"surveyDate,omitempty"`
	TeamLead   *string    `json:"teamLead,omitempty"`
	Team       *string    `json:"team,omitempty"` // comma-joined names
}

// TeamMembers splits the comma-joined team, dropping blanks.
func (p SurveyProject) TeamMembers() []string {
	if p.Team == nil {
		return nil
	}
	var members []string
	for _, name := range strings.Split(*p.Team, ",") {
		if name = strings.TrimSpace(name); name != "" {
			members = append(members, name)
		}
	}
	return members
}

// IsScheduled reports whether the date and team step has been completed.
func (p SurveyProject) IsScheduled() bool {
	return p.SurveyDate != nil && p.TeamLead != nil
}
