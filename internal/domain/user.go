package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	MinAge = 0
	MaxAge = 150
)

// UserBase is the shape every user record must satisfy before it can be
// rendered or persisted. It carries no identity.
type UserBase struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// UserWithID is a persisted user. The ID is only ever assigned by a
// UserRepository.
type UserWithID struct {
	ID int64 `json:"id"`
	UserBase
}

// UsersResponse is the JSON envelope for a list of users.
type UsersResponse struct {
	Users []UserBase `json:"users"`
}

// Validate checks the field constraints of a user.
func (u UserBase) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if u.Age < MinAge || u.Age > MaxAge {
		return fmt.Errorf("%w: age must be between %d and %d", ErrValidation, MinAge, MaxAge)
	}
	return nil
}

// ParseUserBase decodes a JSON object into a UserBase. Field names are
// matched exactly and may appear only once. Missing or null fields and
// fields of the wrong type are reported as ErrValidation. An integral
// number such as 30.0 is accepted as an age.
func ParseUserBase(data []byte) (UserBase, error) {
	fields, err := decodeObject(data)
	if err != nil {
		return UserBase{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	rawName, rawAge := fields["name"], fields["age"]
	if isMissing(rawName) {
		return UserBase{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if isMissing(rawAge) {
		return UserBase{}, fmt.Errorf("%w: age is required", ErrValidation)
	}

	var u UserBase
	if err := json.Unmarshal(rawName, &u.Name); err != nil {
		return UserBase{}, fmt.Errorf("%w: name must be a string", ErrValidation)
	}

	// Decoding into float64 rejects strings; the integral check rejects 30.5.
	var age float64
	if err := json.Unmarshal(rawAge, &age); err != nil || age != math.Trunc(age) {
		return UserBase{}, fmt.Errorf("%w: age must be an integer", ErrValidation)
	}
	if age < MinAge || age > MaxAge {
		return UserBase{}, fmt.Errorf("%w: age must be between %d and %d", ErrValidation, MinAge, MaxAge)
	}
	u.Age = int(age)

	if err := u.Validate(); err != nil {
		return UserBase{}, err
	}
	return u, nil
}

// decodeObject splits a single JSON object into its raw members, rejecting
// duplicate keys and trailing data.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, errors.New("body must be a JSON object")
	}

	fields := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.New("body must be a JSON object")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("body must be a JSON object")
		}
		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("duplicate field %q", key)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, errors.New("body must be a JSON object")
		}
		fields[key] = value
	}

	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil, errors.New("body must be a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return fields, nil
}

func isMissing(v json.RawMessage) bool {
	return len(v) == 0 || bytes.Equal(v, []byte("null"))
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Insert persists u and returns the row as stored, read back by its
	// generated ID.
	Insert(ctx context.Context, u UserBase) (*UserWithID, error)
	GetByID(ctx context.Context, id int64) (*UserWithID, error)
	List(ctx context.Context) ([]UserWithID, error)
}
