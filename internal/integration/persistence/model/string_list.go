// Package model defines database models for persistence layer.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList stores a list of strings as a JSON text column.
type StringList []string

// Value implements the driver.Valuer interface.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, (*[]string)(l))
}
