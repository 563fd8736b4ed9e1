package entity

// Category is an entry of the fixed category catalogue.
// Every category belongs to exactly one transaction type.
type Category struct {
	Name  string
	Label string
	Icon  string
	Type  TransactionType
}

var expenseCategories = []Category{
	{Name: "food", Label: "Food & Dining", Icon: "utensils", Type: TransactionTypeExpense},
	{Name: "transport", Label: "Transport", Icon: "car", Type: TransactionTypeExpense},
	{Name: "housing", Label: "Housing", Icon: "home", Type: TransactionTypeExpense},
	{Name: "utilities", Label: "Utilities", Icon: "bolt", Type: TransactionTypeExpense},
	{Name: "entertainment", Label: "Entertainment", Icon: "film", Type: TransactionTypeExpense},
	{Name: "shopping", Label: "Shopping", Icon: "shopping-bag", Type: TransactionTypeExpense},
	{Name: "health", Label: "Health", Icon: "heart", Type: TransactionTypeExpense},
	{Name: "education", Label: "Education", Icon: "book", Type: TransactionTypeExpense},
	{Name: "travel", Label: "Travel", Icon: "plane", Type: TransactionTypeExpense},
	{Name: "other", Label: "Other", Icon: "tag", Type: TransactionTypeExpense},
}

var incomeCategories = []Category{
	{Name: "salary", Label: "Salary", Icon: "briefcase", Type: TransactionTypeIncome},
	{Name: "freelance", Label: "Freelance", Icon: "laptop", Type: TransactionTypeIncome},
	{Name: "business", Label: "Business", Icon: "store", Type: TransactionTypeIncome},
	{Name: "investment", Label: "Investment", Icon: "chart-line", Type: TransactionTypeIncome},
	{Name: "gift", Label: "Gift", Icon: "gift", Type: TransactionTypeIncome},
	{Name: "rental", Label: "Rental", Icon: "key", Type: TransactionTypeIncome},
	{Name: "other", Label: "Other", Icon: "tag", Type: TransactionTypeIncome},
}

// CategoriesFor returns the catalogue for a transaction type.
// The returned slice is a copy.
func CategoriesFor(t TransactionType) []Category {
	var src []Category
	switch t {
	case TransactionTypeExpense:
		src = expenseCategories
	case TransactionTypeIncome:
		src = incomeCategories
	default:
		return nil
	}
	out := make([]Category, len(src))
	copy(out, src)
	return out
}

// IsValidCategory reports whether name belongs to the catalogue of t.
func IsValidCategory(t TransactionType, name string) bool {
	for _, c := range CategoriesFor(t) {
		if c.Name == name {
			return true
		}
	}
	return false
}
