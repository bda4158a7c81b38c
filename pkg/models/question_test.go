package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanterry/surveyor/pkg/apperrors"
)

func TestQuestionListItem_Unmarshal(t *testing.T) {
	body := `[
		{"QuestionID": "Q-1", "QuestionNumber": "2.10", "AC Code": "11B-403", "Question": "Is the route 36in wide?",
		 "Shortform": "Route width", "Type": "Route", "Header": "No", "SubHeader": "No",
		 "Stricter": "Yes", "StricterType": "State", "StricterState": "CA"},
		{"QuestionNumber": "2", "AC Code": "", "Question": "Accessible Routes", "Shortform": "",
		 "Type": "", "Header": "Yes", "SubHeader": "no", "Stricter": "", "StricterType": "", "StricterState": ""}
	]`

	var items []QuestionListItem
	require.NoError(t, json.Unmarshal([]byte(body), &items))
	require.Len(t, items, 2)

	id, err := items[0].QuestionID()
	require.NoError(t, err)
	assert.Equal(t, "Q-1", id)
	assert.Equal(t, "11B-403", items[0].ACCode)
	assert.True(t, items[0].IsStricter())
	assert.False(t, items[0].IsHeader())

	assert.True(t, items[1].IsHeader())
	assert.False(t, items[1].IsSubHeader())
	assert.False(t, items[1].HasID())
	_, err = items[1].QuestionID()
	assert.True(t, errors.Is(err, apperrors.ErrMissingQuestionID))
}

func TestQuestionListItem_BlankIDIsMissing(t *testing.T) {
	blank := "  "
	item := QuestionListItem{ID: &blank}

	_, err := item.QuestionID()
	assert.ErrorIs(t, err, apperrors.ErrMissingQuestionID)
}

func TestQuestionDetail_OptionalFields(t *testing.T) {
	body := `[{
		"QuestionNumber": "4.1",
		"Disability Type": "Mobility",
		"Barrier Question": "Door opening force exceeds 5 lbf",
		"Desired Information": "Measured force",
		"Interpretation": "Interior doors only",
		"Code Reference": "11B-404.2.9"
	}]`

	var details []QuestionDetail
	require.NoError(t, json.Unmarshal([]byte(body), &details))
	require.Len(t, details, 1)

	d := details[0]
	assert.Equal(t, "4.1", d.Number)
	assert.Nil(t, d.ACCode)
	assert.Nil(t, d.NoteToSurveyor)
	require.NotNil(t, d.Interpretation)
	assert.Equal(t, "Interior doors only", *d.Interpretation)
	require.NotNil(t, d.CodeReference)
	assert.Equal(t, "11B-404.2.9", *d.CodeReference)
}

func TestQuestionListItem_Display(t *testing.T) {
	id := "Q&amp;1"
	item := QuestionListItem{
		ID:            &id,
		Number:        "2&#46;1",
		ACCode:        "11B&#45;403",
		Text:          "Ramps &amp; rails",
		Shortform:     "Door&#39;s width",
		Type:          "Ramp",
		Header:        "No",
		Stricter:      "Yes",
		StricterState: "CA &amp; NV",
	}

	got := item.Display()

	assert.Equal(t, "2.1", got.Number)
	assert.Equal(t, "11B-403", got.ACCode)
	assert.Equal(t, "Ramps & rails", got.Text)
	assert.Equal(t, "Door's width", got.Shortform)
	assert.Equal(t, "CA & NV", got.StricterState)
	assert.Equal(t, "Q&amp;1", *got.ID, "the id is sent back to the backend unchanged")
	assert.True(t, got.IsStricter())
	assert.Equal(t, "2&#46;1", item.Number, "the original is not modified")
}

func TestQuestionDetail_Display(t *testing.T) {
	ac := "11B&#45;405"
	note := "Measure &quot;run&quot; &amp; rise"
	detail := QuestionDetail{
		Number:          "4&#46;2",
		ACCode:          &ac,
		BarrierQuestion: "Is the ramp &gt; 1:12?",
		NoteToSurveyor:  &note,
	}

	got := detail.Display()

	assert.Equal(t, "4.2", got.Number)
	assert.Equal(t, "11B-405", *got.ACCode)
	assert.Equal(t, "Is the ramp > 1:12?", got.BarrierQuestion)
	assert.Equal(t, `Measure "run" & rise`, *got.NoteToSurveyor)
	assert.Nil(t, got.Interpretation)
	assert.Equal(t, "Measure &quot;run&quot; &amp; rise", note, "the original is not modified")
}
