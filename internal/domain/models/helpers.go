package models

import (
	"database/sql"
	"encoding/json"
)

// NullStringToPtr converts a sql.NullString to a *string
func NullStringToPtr(ns sql.NullString) *string {
	if ns.Valid {
		s := ns.String
		return &s
	}
	return nil
}

// PtrToNullString converts a *string to a sql.NullString
func PtrToNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// ParseJSON unmarshals a JSON column value, tolerating empty strings
func ParseJSON(data string, v interface{}) error {
	if data == "" {
		return nil
	}
	return json.Unmarshal([]byte(data), v)
}

// ToJSON marshals a value for storage in a JSON column. Nil becomes "{}".
func ToJSON(v interface{}) (string, error) {
	if v == nil {
		return "{}", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
