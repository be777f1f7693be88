package meal

import (
	"encoding/json"
	"strconv"
)

// rawIngredient tolerates the two ingredient shapes found in stored
// payloads: "item" as a legacy alias for "name", and quantity as either
// a number or a numeric string.
type rawIngredient struct {
	Name     string          `json:"name"`
	Item     string          `json:"item"`
	Quantity json.RawMessage `json:"quantity"`
	Unit     string          `json:"unit"`
}

// UnmarshalJSON accepts both ingredient shapes and coerces quantity to
// a positive real, defaulting to 1 when absent or unparsable.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	var raw rawIngredient
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	name := raw.Name
	if name == "" {
		name = raw.Item
	}

	i.Name = name
	i.Unit = raw.Unit
	i.Quantity = coerceQuantity(raw.Quantity)
	return nil
}

func coerceQuantity(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 1
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		if asNumber > 0 {
			return asNumber
		}
		return 1
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if parsed, err := strconv.ParseFloat(asString, 64); err == nil && parsed > 0 {
			return parsed
		}
	}

	return 1
}
