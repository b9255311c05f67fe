package dashboard

import (
	"testing"

	"github.com/studiowebux/foodboard/internal/types"
)

func TestMerge(t *testing.T) {
	target := types.FoodRecord{ID: "1", Name: "Cake", Image: "a.png", Price: 10, Description: "Sweet", Available: true}

	tests := []struct {
		name  string
		input types.FoodInput
		want  types.FoodRecord
	}{
		{
			name:  "empty input keeps everything",
			input: types.FoodInput{},
			want:  target,
		},
		{
			name:  "price only",
			input: types.FoodInput{Price: 12},
			want:  types.FoodRecord{ID: "1", Name: "Cake", Image: "a.png", Price: 12, Description: "Sweet", Available: true},
		},
		{
			name:  "all fields",
			input: types.FoodInput{Name: "Pie", Image: "b.png", Price: 8, Description: "Apple"},
			want:  types.FoodRecord{ID: "1", Name: "Pie", Image: "b.png", Price: 8, Description: "Apple", Available: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Merge(target, tt.input); got != tt.want {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMerge_KeepsUnavailable(t *testing.T) {
	target := types.FoodRecord{ID: "9", Name: "Soup", Available: false}
	got := Merge(target, types.FoodInput{Name: "Stew"})
	if got.Available {
		t.Error("Merge() must not change availability")
	}
	if got.ID != "9" {
		t.Errorf("ID = %q, want 9", got.ID)
	}
}
