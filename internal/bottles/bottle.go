package bottles

// Suggestion is a concrete bottle to look for.
type Suggestion struct {
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"` // 0-5, 0 means unrated
	ImageURL    string  `json:"image_url,omitempty"`
	Link        string  `json:"link,omitempty"`
}

const placeholderName = "Please consult your local wine shop"

// Placeholder is the single suggestion returned for a varietal with no catalog entry.
func Placeholder(varietal string) Suggestion {
	return Suggestion{
		Name:        placeholderName,
		Price:       "Varies",
		Description: "Ask for a " + varietal + " that pairs with your dish",
		Rating:      0,
	}
}
