package problem

// Concept is a short explanation card for a subcategory. Examples are math
// markup and go through the same renderers as problem text.
type Concept struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
	KeyPoints   []string `json:"keyPoints"`
}

// Concepts maps a category ID to explanation cards keyed by subcategory ID.
// Only some subcategories have a card.
var Concepts = map[string]map[string]Concept{
	"algebra": {
		"linear": {
			Title:       "Linear Equations",
			Description: "Linear equations are equations where each term is either a constant or the product of a constant and a single variable (like x) raised to the first power.",
			Examples:    []string{"y = mx + b", "2x + 3 = 7", "x - 5 = 2x + 1"},
			KeyPoints: []string{
				"The highest power of the variable is 1",
				"Graph is always a straight line",
				"Has exactly one solution (unless parallel)",
			},
		},
		"quadratic": {
			Title:       "Quadratic Equations",
			Description: "Quadratic equations are polynomial equations of degree 2, typically written in the form ax² + bx + c = 0.",
			Examples:    []string{"x^2 + 5x + 6 = 0", "2x^2 - 3x = 4", "x^2 = 16"},
			KeyPoints: []string{
				"Has at most two real solutions",
				"Graph is a parabola",
				"Can be solved using quadratic formula: x = (-b ± √(b² - 4ac)) / (2a)",
			},
		},
	},
	"calculus": {
		"derivatives": {
			Title:       "Derivatives",
			Description: "The derivative measures the rate of change of a function with respect to its variable.",
			Examples:    []string{`\text{If } f(x) = x^2, f'(x) = 2x`, `\frac{d}{dx}(\sin x) = \cos x`},
			KeyPoints: []string{
				"Represents instantaneous rate of change",
				"Slope of the tangent line at any point",
				"Used to find maximum and minimum values",
			},
		},
		"integrals": {
			Title:       "Integrals",
			Description: "Integration is the reverse process of differentiation, used to find the area under a curve.",
			Examples:    []string{`\int x\,dx = \frac{x^2}{2} + C`, `\int \sin x\,dx = -\cos x + C`},
			KeyPoints: []string{
				"Indefinite integrals include a constant C",
				"Definite integrals give exact area",
				"Fundamental theorem of calculus connects derivatives and integrals",
			},
		},
	},
}

// ConceptFor returns the card for a subcategory, if it has one.
func ConceptFor(category, subcategory string) (Concept, bool) {
	c, ok := Concepts[category][subcategory]
	return c, ok
}
