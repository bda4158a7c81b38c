package models

import (
	"html"
	"strings"

	"github.com/evanterry/surveyor/pkg/apperrors"
)

// QuestionListItem is one row of a question list.
// Header, SubHeader and Stricter are "Yes"/"No" strings on the wire.
type QuestionListItem struct {
	ID            *string `json:"QuestionID,omitempty"`
	Number        string  `json:"QuestionNumber"`
	ACCode        string  `json:"AC Code"`
	Text          string  `json:"Question"`
	Shortform     string  `json:"Shortform"`
	Type          string  `json:"Type"`
	Header        string  `json:"Header"`
	SubHeader     string  `json:"SubHeader"`
	Stricter      string  `json:"Stricter"`
	StricterType  string  `json:"StricterType"`
	StricterState string  `json:"StricterState"`
}

// QuestionID returns the id used to key barriers and fetch details.
// Items without an id cannot be selected; callers get ErrMissingQuestionID.
func (q QuestionListItem) QuestionID() (string, error) {
	if q.ID == nil || strings.TrimSpace(*q.ID) == "" {
		return "", apperrors.ErrMissingQuestionID
	}
	return *q.ID, nil
}

// HasID reports whether the item carries a usable id.
func (q QuestionListItem) HasID() bool {
	_, err := q.QuestionID()
	return err == nil
}

func (q QuestionListItem) IsHeader() bool    { return isYes(q.Header) }
func (q QuestionListItem) IsSubHeader() bool { return isYes(q.SubHeader) }
func (q QuestionListItem) IsStricter() bool  { return isYes(q.Stricter) }

// Display returns a copy with HTML entities ("&amp;", "&#39;") decoded in the text fields.
// The id and flags are left as sent; sort on the raw Number.
func (q QuestionListItem) Display() QuestionListItem {
	q.Number = html.UnescapeString(q.Number)
	q.ACCode = html.UnescapeString(q.ACCode)
	q.Text = html.UnescapeString(q.Text)
	q.Shortform = html.UnescapeString(q.Shortform)
	q.Type = html.UnescapeString(q.Type)
	q.StricterState = html.UnescapeString(q.StricterState)
	return q
}

func isYes(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}

// QuestionDetail is the full content of one question, fetched per question.
type QuestionDetail struct {
	Number                string  `json:"QuestionNumber"`
	ACCode                *string `json:"ACCode,omitempty"`
	DisabilityType        string  `json:"Disability Type"`
	BarrierQuestion       string  `json:"Barrier Question"`
	Interpretation        *string `json:"Interpretation,omitempty"`
	NoteToSurveyor        *string `json:"Note to Surveyor,omitempty"`
	AcceptableMeasurement *string `json:"Acceptable Measurement,omitempty"`
	DesiredInformation    string  `json:"Desired Information"`
	SectionNumber         *string `json:"Section Number,omitempty"`
	FigureNumber          *string `json:"Figure Number,omitempty"`
	CodeReference         *string `json:"Code Reference,omitempty"`
	CoradaReference       *string `json:"Corada Reference,omitempty"`
}

// Display returns a copy with HTML entities decoded in every text field.
func (d QuestionDetail) Display() QuestionDetail {
	d.Number = html.UnescapeString(d.Number)
	d.ACCode = unescapePtr(d.ACCode)
	d.DisabilityType = html.UnescapeString(d.DisabilityType)
	d.BarrierQuestion = html.UnescapeString(d.BarrierQuestion)
	d.Interpretation = unescapePtr(d.Interpretation)
	d.NoteToSurveyor = unescapePtr(d.NoteToSurveyor)
	d.AcceptableMeasurement = unescapePtr(d.AcceptableMeasurement)
	d.DesiredInformation = html.UnescapeString(d.DesiredInformation)
	d.SectionNumber = unescapePtr(d.SectionNumber)
	d.FigureNumber = unescapePtr(d.FigureNumber)
	d.CodeReference = unescapePtr(d.CodeReference)
	d.CoradaReference = unescapePtr(d.CoradaReference)
	return d
}

func unescapePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := html.UnescapeString(*s)
	return &v
}
