package bottles

import (
	"fmt"
	"strings"
)

// Header opens every formatted suggestion block.
const Header = "🍾 **Specific Bottle Recommendations:**"

// NoneFound is rendered for an empty suggestion list.
const NoneFound = "No specific bottles found. Please consult your local wine shop."

// Format renders suggestions as a markdown block. Ratings of 0 are omitted.
func Format(suggestions []Suggestion) string {
	if len(suggestions) == 0 {
		return NoneFound
	}

	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n\n")
	for i, s := range suggestions {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, s.Name)
		fmt.Fprintf(&b, "   💰 %s\n", s.Price)
		if s.Rating > 0 {
			fmt.Fprintf(&b, "   ⭐ Rating: %.1f/5\n", s.Rating)
		}
		fmt.Fprintf(&b, "   📝 %s\n\n", s.Description)
	}
	return b.String()
}
