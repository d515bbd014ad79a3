package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Asset is an image hosted by the external media host
type Asset struct {
	URL      string `json:"url" gorm:"column:url"`
	PublicID string `json:"publicId" gorm:"column:public_id"`
}

// IsZero reports whether the asset references nothing
func (a Asset) IsZero() bool {
	return a.PublicID == "" && a.URL == ""
}

// AssetList custom type for JSON storage of gallery images
type AssetList []Asset

func (l AssetList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *AssetList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// StringList custom type for JSON storage of string tags
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("type assertion to []byte failed")
	}
}
