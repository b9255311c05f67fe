package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FoodRecord is a catalog entry as served by the backend
type FoodRecord struct {
	ID          string  `json:"id" yaml:"id" validate:"required"`
	Image       string  `json:"image" yaml:"image" validate:"required"`
	Name        string  `json:"name" yaml:"name" validate:"required"`
	Price       float64 `json:"price" yaml:"price" validate:"required"`
	Description string  `json:"description" yaml:"description" validate:"required"`
	Available   bool    `json:"available" yaml:"available"`
}

// FoodInput is the payload submitted by the add and edit forms.
// Zero fields mean "not provided".
type FoodInput struct {
	Image       string  `json:"image,omitempty" yaml:"image,omitempty" validate:"required"`
	Name        string  `json:"name,omitempty" yaml:"name,omitempty" validate:"required"`
	Price       float64 `json:"price,omitempty" yaml:"price,omitempty" validate:"required,gt=0"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty" validate:"required"`
}

// createBody is the POST /foods payload
type createBody struct {
	Image       string  `json:"image"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
}

// CreatePayload returns the JSON body for a create call. Availability is
// always true for new entries.
func (in FoodInput) CreatePayload() ([]byte, error) {
	return json.Marshal(createBody{
		Image:       in.Image,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Available:   true,
	})
}

// IsEmpty reports whether no field was provided
func (in FoodInput) IsEmpty() bool {
	return in == FoodInput{}
}

// UnmarshalJSON accepts the id as either a JSON string or a JSON number.
// json-server style backends hand out numeric ids.
func (f *FoodRecord) UnmarshalJSON(data []byte) error {
	type plain FoodRecord
	aux := struct {
		ID json.RawMessage `json:"id"`
		*plain
	}{plain: (*plain)(f)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := decodeID(aux.ID)
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("invalid food id: %w", err)
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid food id %s: %w", string(raw), err)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}
