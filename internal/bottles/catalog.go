package bottles

import "strings"

type catalogEntry struct {
	varietal string
	bottles  []Suggestion
}

// catalog is the curated fallback table, checked in order.
var catalog = []catalogEntry{
	{
		varietal: "Pinot Noir",
		bottles: []Suggestion{
			{Name: "Meiomi Pinot Noir", Price: "$18-22", Description: "Smooth, versatile California Pinot with notes of berry and vanilla", Rating: 4.2},
			{Name: "La Crema Pinot Noir", Price: "$15-20", Description: "Elegant Sonoma Coast Pinot with cherry and spice notes", Rating: 4.1},
			{Name: "Böen Pinot Noir", Price: "$25-30", Description: "Rich, complex California Pinot with dark fruit flavors", Rating: 4.3},
		},
	},
	{
		varietal: "Cabernet Sauvignon",
		bottles: []Suggestion{
			{Name: "Josh Cellars Cabernet", Price: "$12-15", Description: "Bold, approachable Cab with blackberry and vanilla", Rating: 4.0},
			{Name: "Decoy Cabernet Sauvignon", Price: "$20-25", Description: "Napa Valley Cab with rich fruit and soft tannins", Rating: 4.3},
			{Name: "The Prisoner Cabernet", Price: "$45-50", Description: "Premium Napa blend with complex dark fruit", Rating: 4.5},
		},
	},
	{
		varietal: "Chardonnay",
		bottles: []Suggestion{
			{Name: "Kendall-Jackson Chardonnay", Price: "$12-15", Description: "Classic California Chard with tropical fruit and oak", Rating: 4.0},
			{Name: "Sonoma-Cutrer Chardonnay", Price: "$20-25", Description: "Elegant Russian River Valley Chard", Rating: 4.2},
			{Name: "Rombauer Chardonnay", Price: "$30-35", Description: "Rich, buttery Carneros Chardonnay", Rating: 4.4},
		},
	},
	{
		varietal: "Sauvignon Blanc",
		bottles: []Suggestion{
			{Name: "Oyster Bay Sauvignon Blanc", Price: "$8-10", Description: "Crisp New Zealand Sauv Blanc with citrus notes", Rating: 3.9},
			{Name: "Whitehaven Sauvignon Blanc", Price: "$12-15", Description: "Vibrant Marlborough wine with tropical flavors", Rating: 4.2},
			{Name: "Cloudy Bay Sauvignon Blanc", Price: "$25-30", Description: "Premium New Zealand icon with complex aromatics", Rating: 4.4},
		},
	},
}

// lookupCatalog returns a copy of the curated bottles whose varietal key
// appears in varietal (case-insensitive).
func lookupCatalog(varietal string) ([]Suggestion, bool) {
	lowered := strings.ToLower(varietal)
	for _, entry := range catalog {
		if strings.Contains(lowered, strings.ToLower(entry.varietal)) {
			out := make([]Suggestion, len(entry.bottles))
			copy(out, entry.bottles)
			return out, true
		}
	}
	return nil, false
}

// CatalogVarietals lists the varietals with curated bottles, in table order.
func CatalogVarietals() []string {
	out := make([]string, len(catalog))
	for i, entry := range catalog {
		out[i] = entry.varietal
	}
	return out
}
