package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurveyProject_RoundTripWithOptionalFieldsAbsent(t *testing.T) {
	original := SurveyProject{
		Project:    "P-100",
		Campus:     "North",
		Site:       "Main Library",
		UNID:       "ABC123",
		Standard:   "CBC2022",
		CostFactor: "1.15",
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "surveyDate")
	assert.NotContains(t, string(data), "teamLead")

	var decoded SurveyProject
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
	assert.False(t, decoded.IsScheduled())
}

func TestSurveyProject_RoundTripWithSchedule(t *testing.T) {
	date := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	lead := "Ana Ortiz"
	team := "Raj Patel, Kim Lee"
	original := SurveyProject{
		Project:    "P-100",
		Campus:     "North",
		Site:       "Main Library",
		UNID:       "ABC123",
		Standard:   "CBC2022",
		CostFactor: "1.15",
		SurveyDate: &date,
		TeamLead:   &lead,
		Team:       &team,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded SurveyProject
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
	assert.True(t, decoded.IsScheduled())
	assert.Equal(t, []string{"Raj Patel", "Kim Lee"}, decoded.TeamMembers())
}

func TestSurveyProject_TeamMembersSkipsBlanks(t *testing.T) {
	team := " Ana , ,Raj,"
	p := SurveyProject{Team: &team}
	assert.Equal(t, []string{"Ana", "Raj"}, p.TeamMembers())
	assert.Nil(t, SurveyProject{}.TeamMembers())
}
