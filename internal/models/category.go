// Package models defines the data shapes shared across the application:
// the category enumeration, the canonical transaction, the per-source raw
// records and the category assignment row.
package models

import "strings"

// Category is the closed set of spending categories. Every transaction
// resolves to exactly one of these; anything unrecognized becomes
// CategoryUnknown at the deserialization boundary.
type Category string

const (
	CategoryNeeds         Category = "NEEDS"
	CategoryGroceries     Category = "GROCERIES"
	CategoryShopping      Category = "SHOPPING"
	CategoryPersonalCare  Category = "PERSONAL_CARE"
	CategoryTransport     Category = "TRANSPORT"
	CategoryTransfers     Category = "TRANSFERS"
	CategoryBills         Category = "BILLS"
	CategoryTravel        Category = "TRAVEL"
	CategoryEatingOut     Category = "EATING_OUT"
	CategoryIncome        Category = "INCOME"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryEmergencyFund Category = "EMERGENCY_FUND"
	CategoryCharity       Category = "CHARITY"
	CategoryGifts         Category = "GIFTS"
	CategoryLISA          Category = "LISA"
	CategoryISA           Category = "ISA"
	CategoryTax           Category = "TAX"
	CategoryUnknown       Category = "UNKNOWN"
)

var allCategories = []Category{
	CategoryNeeds,
	CategoryGroceries,
	CategoryShopping,
	CategoryPersonalCare,
	CategoryTransport,
	CategoryTransfers,
	CategoryBills,
	CategoryTravel,
	CategoryEatingOut,
	CategoryIncome,
	CategoryEntertainment,
	CategoryEmergencyFund,
	CategoryCharity,
	CategoryGifts,
	CategoryLISA,
	CategoryISA,
	CategoryTax,
	CategoryUnknown,
}

// Categories returns the full enumeration in declaration order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is a member of the enumeration.
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// ParseCategory maps a raw string onto the enumeration. Unrecognized or
// empty values fall back to CategoryUnknown rather than erroring; callers
// that need to distinguish "missing" from "unknown" must check the input
// themselves before parsing.
func ParseCategory(s string) Category {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return CategoryUnknown
}
