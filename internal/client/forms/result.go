package forms

import "github.com/google/uuid"

// Message is a single validation error message. The ID lets the user
// dismiss one message without touching the rest.
type Message struct {
	ID   string
	Text string
}

// FieldResult is the validation outcome for one field.
type FieldResult struct {
	IsValid  bool
	Messages []Message
}

// Result maps every known field of a form to its validation outcome. A
// Result always contains an entry for each field the form was constructed
// with, so callers never need existence checks before reading.
type Result map[string]*FieldResult

// NewResult builds an all-valid, empty-message result covering the given
// fields.
func NewResult(fields ...string) Result {
	r := make(Result, len(fields))
	for _, f := range fields {
		r[f] = &FieldResult{IsValid: true}
	}
	return r
}

// Fail marks field invalid and appends the given messages. Unknown fields
// get an entry on demand so backend-reported fields are never dropped.
func (r Result) Fail(field string, texts ...string) {
	fr, ok := r[field]
	if !ok {
		fr = &FieldResult{IsValid: true}
		r[field] = fr
	}
	if len(texts) == 0 {
		return
	}
	fr.IsValid = false
	for _, text := range texts {
		fr.Messages = append(fr.Messages, Message{ID: uuid.NewString(), Text: text})
	}
}

// Valid reports whether every field validates. This is the commit gate:
// the commit phase runs iff Valid() is true at the end of validation.
func (r Result) Valid() bool {
	for _, fr := range r {
		if !fr.IsValid {
			return false
		}
	}
	return true
}

// Dismiss removes one displayed message. The field's IsValid flag is left
// untouched: dismissing a message hides it, it does not re-validate.
func (r Result) Dismiss(field, messageID string) {
	fr, ok := r[field]
	if !ok {
		return
	}
	for i, m := range fr.Messages {
		if m.ID == messageID {
			fr.Messages = append(fr.Messages[:i], fr.Messages[i+1:]...)
			return
		}
	}
}
