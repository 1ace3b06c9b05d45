package domain

// Restaurant is a read-only catalog entry. The matching engine consumes
// it, the catalog store owns it.
type Restaurant struct {
	ID            string  `json:"restaurant_id"`
	Name          string  `json:"name"`
	Rating        float64 `json:"rating"`
	PriceLevel    int     `json:"price_level"`
	PriceRangeMin int     `json:"price_range_min,omitempty"`
	PriceRangeMax int     `json:"price_range_max,omitempty"`
	Type          string  `json:"type"`
	Summary       string  `json:"summary,omitempty"`
	URL           string  `json:"url,omitempty"`
	Reservable    bool    `json:"reservable"`
	Vegetarian    bool    `json:"vegetarian"`
}
