package plantation

import (
	"encoding/json"
	"strings"

	"github.com/mamadbah2/geotree/internal/carbon"
	"github.com/mamadbah2/geotree/internal/domain/models"
)

// DecodePlants accepts the plants field either as a JSON array or as a string
// holding one, which is what form posts send. A missing value yields no plants.
func DecodePlants(raw any) ([]models.PlantQuantity, error) {
	if s, ok := raw.(string); ok {
		if strings.TrimSpace(s) == "" {
			return []models.PlantQuantity{}, nil
		}
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err != nil {
			return nil, ErrInvalidPlantsFormat
		}
		raw = parsed
	}

	switch v := raw.(type) {
	case nil:
		return []models.PlantQuantity{}, nil
	case []any:
		plants := make([]models.PlantQuantity, 0, len(v))
		for _, entry := range v {
			obj, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			name, _ := obj["plant_name"].(string)
			plants = append(plants, models.PlantQuantity{
				PlantName: strings.TrimSpace(name),
				Quantity:  carbon.ToNumber(obj["quantity"]),
			})
		}
		return plants, nil
	default:
		return nil, ErrPlantsNotArray
	}
}

// SumQuantities totals the quantities of the plant lines.
func SumQuantities(plants []models.PlantQuantity) float64 {
	var total float64
	for _, p := range plants {
		total += p.Quantity
	}
	return total
}
