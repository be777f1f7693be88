package meal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() Payload {
	return Payload{
		Name:              "Dal Tadka",
		Cuisine:           CuisineNorthIndian,
		MealType:          MealTypeDinner,
		PrepTime:          35,
		EstimatedCalories: 420,
		Ingredients: []Ingredient{
			{Name: "Toor Dal", Quantity: 0.5, Unit: "cup"},
		},
	}
}

func TestPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Payload)
		wantErr error
	}{
		{"valid", func(p *Payload) {}, nil},
		{"empty name", func(p *Payload) { p.Name = "" }, ErrInvalidMealName},
		{"unknown cuisine", func(p *Payload) { p.Cuisine = "klingon" }, ErrInvalidCuisine},
		{"unknown meal type", func(p *Payload) { p.MealType = "brunch" }, ErrInvalidMealType},
		{"zero prep time", func(p *Payload) { p.PrepTime = 0 }, ErrInvalidPrepTime},
		{"prep time too long", func(p *Payload) { p.PrepTime = 481 }, ErrInvalidPrepTime},
		{"negative calories", func(p *Payload) { p.EstimatedCalories = -1 }, ErrInvalidCalories},
		{"calories too high", func(p *Payload) { p.EstimatedCalories = 5001 }, ErrInvalidCalories},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestIngredientUnmarshalTolerantShapes(t *testing.T) {
	t.Run("item alias and string quantity", func(t *testing.T) {
		var ing Ingredient
		require.NoError(t, json.Unmarshal([]byte(`{"item":"Rice","quantity":"2","unit":"cup"}`), &ing))
		assert.Equal(t, "Rice", ing.Name)
		assert.Equal(t, 2.0, ing.Quantity)
		assert.Equal(t, "cup", ing.Unit)
	})

	t.Run("name wins over item", func(t *testing.T) {
		var ing Ingredient
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Atta","item":"Flour","quantity":1}`), &ing))
		assert.Equal(t, "Atta", ing.Name)
	})

	t.Run("missing quantity defaults to one", func(t *testing.T) {
		var ing Ingredient
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Salt","unit":"tsp"}`), &ing))
		assert.Equal(t, 1.0, ing.Quantity)
	})

	t.Run("unparsable quantity defaults to one", func(t *testing.T) {
		var ing Ingredient
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Milk","quantity":"a splash"}`), &ing))
		assert.Equal(t, 1.0, ing.Quantity)
	})

	t.Run("non-positive quantity defaults to one", func(t *testing.T) {
		var ing Ingredient
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Ghee","quantity":-2}`), &ing))
		assert.Equal(t, 1.0, ing.Quantity)
	})
}

func TestCaseFold(t *testing.T) {
	assert.Equal(t, "dal rice", CaseFold("Dal  Rice"))
	assert.Equal(t, "dal rice", CaseFold("  dal RICE "))
	assert.Equal(t, "", CaseFold("   "))
}
