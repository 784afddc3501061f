package model

// Investment is an advertising spend entered in its own currency.
type Investment struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// ExpenseEntry is one named operating expense, such as a store subscription.
type ExpenseEntry struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// OperatingExpenses is the ordered expense list plus the optional flat per-unit return cost.
type OperatingExpenses struct {
	Expenses       []ExpenseEntry `json:"expenses"`
	UnitReturnCost string         `json:"unit_return_cost"`
}

// Clone returns a deep copy so a snapshot never shares its slice with the working value.
func (o OperatingExpenses) Clone() OperatingExpenses {
	out := OperatingExpenses{UnitReturnCost: o.UnitReturnCost}
	if o.Expenses != nil {
		out.Expenses = make([]ExpenseEntry, len(o.Expenses))
		copy(out.Expenses, o.Expenses)
	}
	return out
}

// DefaultOperatingExpenses is the starting expense list: a 29 USD Shopify plan.
func DefaultOperatingExpenses() OperatingExpenses {
	return OperatingExpenses{
		Expenses: []ExpenseEntry{{ID: NewID(), Name: "Shopify", Amount: "29", Currency: "USD"}},
	}
}

// AverageCPA is the operator's observed cost per acquisition, used to project product profit.
type AverageCPA struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}
