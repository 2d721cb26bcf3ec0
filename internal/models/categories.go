package models

// CategoryOther is the fallback display bucket for categories outside the
// fixed taxonomy. The original string is kept verbatim in storage; only the
// presentation collapses to Other.
const CategoryOther = "Other"

// ExpenseCategories is the fixed set of expense categories.
var ExpenseCategories = []string{
	"Food",
	"Social Life",
	"Pets",
	"Transport",
	"Culture",
	"Household",
	"Apparel",
	"Beauty",
	"Health",
	"Education",
	"Gift",
	CategoryOther,
}

// IncomeCategories is the fixed set of income categories.
var IncomeCategories = []string{
	"Allowance",
	"Salary",
	"Petty cash",
	"Bonus",
}

// KnownCategory reports whether name belongs to the fixed taxonomy.
func KnownCategory(name string) bool {
	for _, c := range ExpenseCategories {
		if c == name {
			return true
		}
	}
	for _, c := range IncomeCategories {
		if c == name {
			return true
		}
	}
	return false
}

// DisplayCategory maps a stored category to its display bucket. Known
// categories map to themselves, everything else to Other.
func DisplayCategory(name string) string {
	if KnownCategory(name) {
		return name
	}
	return CategoryOther
}
