package order

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Enum-style names sent by older clients, mapped to their display names.
var categoryDisplayNames = map[string]string{
	"MENS_CLOTHING":   "Men's Clothing",
	"WOMENS_CLOTHING": "Women's Clothing",
	"KIDS_CLOTHING":   "Kids Clothing",
	"HOUSE_HOLDS":     "House Holds",
	"OTHERS":          "Others",
}

var productDisplayNames = map[string]string{
	"T_SHIRT":        "T-Shirt",
	"SHIRT":          "Shirt",
	"JEANS":          "Jeans",
	"TROUSERS":       "Trousers",
	"SHORTS":         "Shorts",
	"INNERWEAR":      "Innerwear",
	"FORMAL_SHIRT":   "Formal Shirt",
	"CASUAL_SHIRT":   "Casual Shirt",
	"JACKET":         "Jacket",
	"SWEATER":        "Sweater",
	"SAREE":          "Saree",
	"KURTI":          "Kurti",
	"DRESS":          "Dress",
	"BLOUSE":         "Blouse",
	"SKIRT":          "Skirt",
	"TOP":            "Top",
	"LEHENGA":        "Lehenga",
	"SALWAR":         "Salwar",
	"DUPATTA":        "Dupatta",
	"NIGHT_DRESS":    "Night Dress",
	"KIDS_TSHIRT":    "Kids T-shirt",
	"KIDS_SHORTS":    "Kids Shorts",
	"SCHOOL_UNIFORM": "School Uniform",
	"FROCK":          "Frock",
	"PYJAMAS":        "Pyjamas",
	"KIDS_JEANS":     "Kids Jeans",
	"BABY_SUIT":      "Baby Suit",
	"ROMPER":         "Romper",
	"KIDS_JACKET":    "Kids Jacket",
	"KIDS_SWEATER":   "Kids Sweater",
	"BEDSHEET":       "Bedsheet",
	"PILLOW_COVER":   "Pillow Cover",
	"CURTAIN":        "Curtain",
	"TABLE_CLOTH":    "Table Cloth",
	"TOWEL":          "Towel",
	"BLANKET":        "Blanket",
	"CARPET":         "Carpet",
	"BED_COVER":      "Bed Cover",
	"CUSHION_COVER":  "Cushion Cover",
}

// CanonicalCategory returns the display name for a category. Blank input stays blank.
func CanonicalCategory(raw string) string {
	return canonicalName(categoryDisplayNames, raw)
}

// CanonicalProduct returns the display name for a product. Blank input stays blank.
func CanonicalProduct(raw string) string {
	return canonicalName(productDisplayNames, raw)
}

func canonicalName(table map[string]string, raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	if display, ok := table[name]; ok {
		return display
	}
	if isEnumStyle(name) {
		// Casers keep state, so each call gets its own.
		return cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(name), "_", " "))
	}
	return name
}

// isEnumStyle matches SCREAMING_SNAKE names such as BATH_ROBE.
func isEnumStyle(s string) bool {
	if !strings.Contains(s, "_") {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}
