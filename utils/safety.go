package utils

// Age-based allergen policy for recipe searches. Kids under three should not
// be offered recipes containing peanuts or tree nuts; under six we still keep
// peanuts out. The strings are Edamam "health" filter labels.
const (
	HealthPeanutFree  = "peanut-free"
	HealthTreeNutFree = "tree-nut-free"
)

// AllergenExclusionsForAge returns the health filters to apply for a child of
// the given age (whole years). Empty for age >= 6.
func AllergenExclusionsForAge(age int) []string {
	switch {
	case age < 3:
		return []string{HealthPeanutFree, HealthTreeNutFree}
	case age < 6:
		return []string{HealthPeanutFree}
	default:
		return nil
	}
}
