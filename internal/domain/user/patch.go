package user

import (
	"encoding/json"
	"strings"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/validators"
)

// Field names a mutable profile attribute as stored. The value doubles as
// the document key.
type Field string

const (
	FieldFullName     Field = "fullName"
	FieldEmail        Field = "email"
	FieldPasswordHash Field = "passwordHash"
)

const MinPasswordLength = 6

var columns = map[Field]string{
	FieldFullName:     "full_name",
	FieldEmail:        "email",
	FieldPasswordHash: "password_hash",
}

var editable = map[string]bool{
	"fullName": true,
	"email":    true,
	"password": true,
}

var protected = map[string]bool{
	"id":           true,
	"_id":          true,
	"role":         true,
	"passwordHash": true,
	"createdAt":    true,
	"updatedAt":    true,
}

// Hasher turns a plaintext password into the stored hash.
type Hasher func(password string) (string, error)

// Patch is a partial profile update. Passwords only ever reach it hashed.
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

// Keys lists the assigned public keys, for audit metadata. The password
// shows up as "password".
func (p Patch) Keys() []string {
	out := make([]string, 0, len(p.values))
	for _, f := range []Field{FieldFullName, FieldEmail, FieldPasswordHash} {
		if _, ok := p.values[f]; !ok {
			continue
		}
		if f == FieldPasswordHash {
			out = append(out, "password")
			continue
		}
		out = append(out, string(f))
	}
	return out
}

func (p Patch) Values() map[string]any {
	out := make(map[string]any, len(p.values))
	for f, v := range p.values {
		out[string(f)] = v
	}
	return out
}

func (p Patch) Columns() map[string]any {
	out := make(map[string]any, len(p.values))
	for f, v := range p.values {
		out[columns[f]] = v
	}
	return out
}

func (p Patch) Apply(u *models.User) {
	for f, v := range p.values {
		switch f {
		case FieldFullName:
			u.FullName = v
		case FieldEmail:
			u.Email = v
		case FieldPasswordHash:
			u.PasswordHash = v
		}
	}
}

// ParsePatch builds a profile Patch from a decoded JSON object. Accepted keys
// are fullName, email and password; the password is validated and hashed
// with hash. Protected keys, unknown keys and non-string values are rejected.
func ParsePatch(raw map[string]json.RawMessage, hash Hasher) (Patch, error) {
	p := NewPatch()

	for key, msg := range raw {
		if protected[key] {
			return Patch{}, httperr.ErrInput(key, "This field cannot be updated.")
		}

		if !editable[key] {
			return Patch{}, httperr.ErrInput(key, "Unknown field.")
		}

		var v *string
		if err := json.Unmarshal(msg, &v); err != nil || v == nil {
			return Patch{}, httperr.ErrInput(key, "Value must be a string.")
		}

		switch key {
		case "fullName":
			name := strings.TrimSpace(*v)
			if name == "" {
				return Patch{}, httperr.ErrInput(key, "Full name cannot be empty.")
			}
			p.values[FieldFullName] = name

		case "email":
			email := strings.ToLower(strings.TrimSpace(*v))
			if ok, reason := validators.ValidateEmail(email); !ok {
				return Patch{}, httperr.ErrInput(key, reason)
			}
			p.values[FieldEmail] = email

		case "password":
			if len(*v) < MinPasswordLength {
				return Patch{}, httperr.ErrInput(key, "Password must be at least 6 characters.")
			}
			h, err := hash(*v)
			if err != nil {
				return Patch{}, err
			}
			p.values[FieldPasswordHash] = h
		}
	}

	return p, nil
}
