package entity

// Category is the closed set of transaction categories.
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryShopping       Category = "Shopping"
	CategoryBills          Category = "Bills"
	CategoryIncome         Category = "Income"
	CategoryOther          Category = "Other"
)

// CategoryKind tells whether a category normally holds income or expenses.
type CategoryKind string

const (
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindIncome  CategoryKind = "income"
)

// IsValid reports whether k is a known kind.
func (k CategoryKind) IsValid() bool {
	return k == CategoryKindExpense || k == CategoryKindIncome
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransportation,
		CategoryEntertainment,
		CategoryShopping,
		CategoryBills,
		CategoryIncome,
		CategoryOther,
	}
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTransportation, CategoryEntertainment,
		CategoryShopping, CategoryBills, CategoryIncome, CategoryOther:
		return true
	}
	return false
}

// Kind returns the kind of transactions usually filed under c.
func (c Category) Kind() CategoryKind {
	if c == CategoryIncome {
		return CategoryKindIncome
	}
	return CategoryKindExpense
}

// Budgetable reports whether a monthly budget may be set for c.
// Income is never budgeted.
func (c Category) Budgetable() bool {
	return c.IsValid() && c != CategoryIncome
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}
