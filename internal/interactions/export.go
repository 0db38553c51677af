package interactions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExportBanner is the first line of every exported document.
const ExportBanner = "Wine Recommendation"

const exportRule = "=================="

// Export renders r as a plain-text document.
func Export(r Record) string {
	var b strings.Builder
	b.WriteString(ExportBanner + "\n")
	b.WriteString(exportRule + "\n")
	fmt.Fprintf(&b, "For: %s\n", r.CustomerName)
	fmt.Fprintf(&b, "Dish: %s\n", r.DishDescription)
	fmt.Fprintf(&b, "Sommelier: %s\n", r.PersonaName)
	b.WriteString("\n")
	b.WriteString(r.ResponseText)
	b.WriteString("\n")
	return b.String()
}

// ExportFilename returns the suggested file name for r.
func ExportFilename(r Record) string {
	name := strings.ReplaceAll(strings.TrimSpace(r.CustomerName), " ", "_")
	name = strings.Map(func(c rune) rune {
		if c == '/' || c == '\\' || c == os.PathSeparator {
			return '_'
		}
		return c
	}, name)
	if name == "" {
		name = "guest"
	}
	return "wine_recommendation_" + name + ".txt"
}

// WriteExport writes r into dir and returns the file path.
func WriteExport(dir string, r Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, ExportFilename(r))
	if err := os.WriteFile(path, []byte(Export(r)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
