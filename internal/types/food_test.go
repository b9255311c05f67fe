package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestFoodRecord_UnmarshalID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
	}{
		{"string id", `{"id":"abc","name":"Cake"}`, "abc"},
		{"numeric id", `{"id":7,"name":"Cake"}`, "7"},
		{"missing id", `{"name":"Cake"}`, ""},
		{"null id", `{"id":null,"name":"Cake"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FoodRecord
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if f.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", f.ID, tt.wantID)
			}
			if f.Name != "Cake" {
				t.Errorf("Name = %q, want Cake", f.Name)
			}
		})
	}
}

func TestFoodRecord_UnmarshalKeepsOtherFields(t *testing.T) {
	input := `{"id":1,"image":"http://img/1.png","name":"Pizza","price":19.9,"description":"Thin crust","available":true}`

	var f FoodRecord
	if err := json.Unmarshal([]byte(input), &f); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := FoodRecord{ID: "1", Image: "http://img/1.png", Name: "Pizza", Price: 19.9, Description: "Thin crust", Available: true}
	if f != want {
		t.Errorf("got %+v, want %+v", f, want)
	}
}

func TestFoodRecord_UnmarshalInvalidID(t *testing.T) {
	var f FoodRecord
	if err := json.Unmarshal([]byte(`{"id":{"x":1}}`), &f); err == nil {
		t.Error("expected error for object id")
	}
}

func TestFoodInput_CreatePayloadForcesAvailable(t *testing.T) {
	in := FoodInput{Name: "Soup", Image: "img", Price: 5, Description: "Hot"}

	data, err := in.CreatePayload()
	if err != nil {
		t.Fatalf("CreatePayload() error = %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if body["available"] != true {
		t.Errorf("available = %v, want true", body["available"])
	}
	if _, ok := body["id"]; ok {
		t.Error("create payload must not carry an id")
	}
}

func TestFoodInput_Validate(t *testing.T) {
	complete := FoodInput{Name: "Soup", Image: "img", Price: 5, Description: "Hot"}
	if err := complete.Validate(); err != nil {
		t.Errorf("complete input: unexpected error %v", err)
	}

	err := FoodInput{Image: "img"}.Validate()
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	for _, field := range []string{"name", "price", "description"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err.Error(), field)
		}
	}
	if strings.Contains(err.Error(), "image") {
		t.Errorf("error %q mentions image which was provided", err.Error())
	}
}

func TestFoodRecord_Validate(t *testing.T) {
	rec := FoodRecord{ID: "1", Name: "Cake", Image: "img", Price: 10, Description: "Sweet"}
	if err := rec.Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}

	rec.ID = ""
	if err := rec.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing id, got %v", err)
	}
}

func TestFoodInput_IsEmpty(t *testing.T) {
	if !(FoodInput{}).IsEmpty() {
		t.Error("zero input should be empty")
	}
	if (FoodInput{Price: 1}).IsEmpty() {
		t.Error("input with price should not be empty")
	}
}
