package receipt

import "pantrychef/constants"

// Item is one extracted grocery line item.
type Item struct {
	Name     string             `json:"name"`
	Quantity float64            `json:"quantity"`
	Unit     constants.Unit     `json:"unit"`
	Price    float64            `json:"price"`
	Category constants.Category `json:"category"`
}
