package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalJSON leaves FoodItems nil unless food_items holds a JSON array, so
// the validator can tell a missing or mistyped list apart from an empty one.
// Malformed elements decode to items the validator rejects rather than
// failing the whole request.
func (input *MealInput) UnmarshalJSON(data []byte) error {
	var raw struct {
		FoodItems json.RawMessage `json:"food_items"`
		MealType  string          `json:"meal_type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding meal: %w", err)
	}

	input.MealType = raw.MealType
	input.FoodItems = nil

	trimmed := bytes.TrimSpace(raw.FoodItems)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return fmt.Errorf("decoding food items: %w", err)
	}

	items := make([]FoodItemInput, 0, len(elements))
	for _, element := range elements {
		items = append(items, decodeFoodItem(element))
	}
	input.FoodItems = items
	return nil
}

// decodeFoodItem treats a non-object element as an item with no name, and a
// non-string name as missing. A quantity that is neither a number nor null is
// flagged as invalid.
func decodeFoodItem(element json.RawMessage) FoodItemInput {
	var item FoodItemInput

	var fields struct {
		Name     json.RawMessage `json:"name"`
		Quantity json.RawMessage `json:"quantity"`
	}
	if json.Unmarshal(element, &fields) != nil {
		return item
	}

	var name string
	if json.Unmarshal(fields.Name, &name) == nil {
		item.Name = name
	}

	quantity := bytes.TrimSpace(fields.Quantity)
	if len(quantity) == 0 || bytes.Equal(quantity, []byte("null")) {
		return item
	}
	var value float64
	if json.Unmarshal(quantity, &value) != nil {
		item.QuantityInvalid = true
		return item
	}
	item.Quantity = &value
	return item
}
