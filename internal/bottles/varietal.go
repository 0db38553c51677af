// Package bottles turns a varietal named in a recommendation into concrete
// bottle suggestions, from Spoonacular when configured and a curated table otherwise.
package bottles

import "strings"

// Vocabulary is the priority-ordered list of varietal and style names
// recognized in recommendation text. Earlier entries win when several appear.
var Vocabulary = []string{
	"Cabernet Sauvignon",
	"Pinot Noir",
	"Chardonnay",
	"Sauvignon Blanc",
	"Merlot",
	"Malbec",
	"Syrah",
	"Shiraz",
	"Zinfandel",
	"Grenache",
	"Tempranillo",
	"Sangiovese",
	"Chianti",
	"Nebbiolo",
	"Barolo",
	"Rioja",
	"Beaujolais",
	"Pinot Grigio",
	"Pinot Gris",
	"Riesling",
	"Gewürztraminer",
	"Gewurztraminer",
	"Chenin Blanc",
	"Viognier",
	"Albariño",
	"Grüner Veltliner",
	"Sancerre",
	"Champagne",
	"Prosecco",
	"Moscato",
	"Rosé",
	"Sherry",
}

// ExtractVarietal returns the highest-priority vocabulary entry mentioned in
// text, matched case-insensitively, and whether one was found.
func ExtractVarietal(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, v := range Vocabulary {
		if strings.Contains(lowered, strings.ToLower(v)) {
			return v, true
		}
	}
	return "", false
}
