package appointment

import (
	"encoding/json"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/validators"
)

// Field names a mutable appointment attribute. The value doubles as the
// JSON key and the document key.
type Field string

const (
	FieldDoctor          Field = "doctor"
	FieldPhoneNumber     Field = "phoneNumber"
	FieldEmail           Field = "email"
	FieldAppointmentType Field = "appointmentType"
	FieldDate            Field = "date"
	FieldTime            Field = "time"
)

// MutableFields is the complete update allow-list, in a stable order.
var MutableFields = []Field{
	FieldDoctor,
	FieldPhoneNumber,
	FieldEmail,
	FieldAppointmentType,
	FieldDate,
	FieldTime,
}

var columns = map[Field]string{
	FieldDoctor:          "doctor",
	FieldPhoneNumber:     "phone_number",
	FieldEmail:           "email",
	FieldAppointmentType: "appointment_type",
	FieldDate:            "date",
	FieldTime:            "time",
}

var protected = map[string]bool{
	"id":          true,
	"_id":         true,
	"createdBy":   true,
	"patientName": true,
	"createdAt":   true,
	"updatedAt":   true,
}

// Patch is a partial update. Fields that are not set keep their stored value.
type Patch struct {
	values map[Field]string
}

func NewPatch() Patch {
	return Patch{values: map[Field]string{}}
}

// Set returns a copy of p with f assigned.
func (p Patch) Set(f Field, v string) Patch {
	out := NewPatch()
	for k, val := range p.values {
		out.values[k] = val
	}
	out.values[f] = v
	return out
}

func (p Patch) Get(f Field) (string, bool) {
	v, ok := p.values[f]
	return v, ok
}

func (p Patch) IsEmpty() bool {
	return len(p.values) == 0
}

// Fields lists the assigned fields in allow-list order.
func (p Patch) Fields() []Field {
	out := make([]Field, 0, len(p.values))
	for _, f := range MutableFields {
		if _, ok := p.values[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Values returns the assignments keyed by field, for document stores.
func (p Patch) Values() map[string]any {
	out := make(map[string]any, len(p.values))
	for f, v := range p.values {
		out[string(f)] = v
	}
	return out
}

// Columns returns the assignments keyed by relational column name.
func (p Patch) Columns() map[string]any {
	out := make(map[string]any, len(p.values))
	for f, v := range p.values {
		out[columns[f]] = v
	}
	return out
}

// Apply merges p into ap.
func (p Patch) Apply(ap *models.Appointment) {
	for f, v := range p.values {
		switch f {
		case FieldDoctor:
			ap.Doctor = v
		case FieldPhoneNumber:
			ap.PhoneNumber = v
		case FieldEmail:
			ap.Email = v
		case FieldAppointmentType:
			ap.AppointmentType = v
		case FieldDate:
			ap.Date = v
		case FieldTime:
			ap.Time = v
		}
	}
}

// Validate applies the creation-time contact rules to the contact fields
// present in p.
func (p Patch) Validate() error {
	if v, ok := p.values[FieldEmail]; ok {
		if valid, reason := validators.ValidateEmail(v); !valid {
			return httperr.ErrInput(string(FieldEmail), reason)
		}
	}
	if v, ok := p.values[FieldPhoneNumber]; ok {
		if valid, reason := validators.ValidatePhone(v); !valid {
			return httperr.ErrInput(string(FieldPhoneNumber), reason)
		}
	}
	return nil
}

// ParsePatch builds a Patch from a decoded JSON object. Identity keys,
// unknown keys and non-string values are rejected.
func ParsePatch(raw map[string]json.RawMessage) (Patch, error) {
	p := NewPatch()
	for key, msg := range raw {
		if protected[key] {
			return Patch{}, httperr.ErrInput(key, "This field cannot be updated.")
		}
		f := Field(key)
		if _, ok := columns[f]; !ok {
			return Patch{}, httperr.ErrInput(key, "Unknown field.")
		}
		var v *string
		if err := json.Unmarshal(msg, &v); err != nil || v == nil {
			return Patch{}, httperr.ErrInput(key, "Value must be a string.")
		}
		p.values[f] = *v
	}
	return p, nil
}
