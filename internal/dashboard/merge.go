package dashboard

import "github.com/studiowebux/foodboard/internal/types"

// Merge overlays the provided fields of input onto target. Zero fields of
// input keep the target's value; id and availability always come from target.
func Merge(target types.FoodRecord, input types.FoodInput) types.FoodRecord {
	merged := target
	if input.Image != "" {
		merged.Image = input.Image
	}
	if input.Name != "" {
		merged.Name = input.Name
	}
	if input.Price != 0 {
		merged.Price = input.Price
	}
	if input.Description != "" {
		merged.Description = input.Description
	}
	return merged
}
