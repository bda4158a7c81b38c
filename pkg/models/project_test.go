package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_UnmarshalWireNames(t *testing.T) {
	body := `[{"Project Number": "P-100", "Project Name": "Central Library"}]`

	var projects []Project
	require.NoError(t, json.Unmarshal([]byte(body), &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "P-100", projects[0].Number)
	assert.Equal(t, "Central Library", projects[0].Name)
}

func TestSite_CostFactorAcceptsNumberOrString(t *testing.T) {
	body := `[
		{"UNID": "A1", "Site": "Main", "Standard": "CBC", "CostFactor": "1.15"},
		{"UNID": "B2", "Site": "Annex", "Standard": "ADA", "CostFactor": 0.95}
	]`

	var sites []Site
	require.NoError(t, json.Unmarshal([]byte(body), &sites))
	require.Len(t, sites, 2)
	assert.Equal(t, "1.15", sites[0].CostFactor.String())
	assert.Equal(t, "0.95", sites[1].CostFactor.String())
	assert.Equal(t, "Annex", sites[1].Name)
	assert.Equal(t, "ADA", sites[1].Standard)
}

func TestStandardFormUseCode_UnmarshalWireNames(t *testing.T) {
	var std Standard
	require.NoError(t, json.Unmarshal([]byte(`{"State": "California", "Standard": "CBC2022"}`), &std))
	assert.Equal(t, Standard{State: "California", Code: "CBC2022"}, std)

	var form Form
	require.NoError(t, json.Unmarshal([]byte(`{"Form Name": "Parking", "Form Code": "PK"}`), &form))
	assert.Equal(t, Form{Name: "Parking", Code: "PK"}, form)

	var team TeamResponse
	require.NoError(t, json.Unmarshal([]byte(`{"Team": ["Ana", "Raj"]}`), &team))
	assert.Equal(t, []string{"Ana", "Raj"}, team.Team)
}

func TestUseCodeValues_SortsCaseInsensitively(t *testing.T) {
	codes := []UseCode{
		{Code: "retail"},
		{Code: "Assembly"},
		{Code: "office"},
		{Code: "Lodging"},
	}

	assert.Equal(t, []string{"Assembly", "Lodging", "office", "retail"}, UseCodeValues(codes))
	assert.Empty(t, UseCodeValues(nil))
}
