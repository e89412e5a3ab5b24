package policy

import (
	"strings"
	"time"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// IncomeInsertInput is the untrusted income-creation shape. Amount and
// date arrive as raw strings, exactly as an HTML form or loosely-typed
// JSON client sends them.
type IncomeInsertInput struct {
	UserID        int64
	CategoryID    int64
	Name          string
	Source        string
	Amount        string
	ReceivedDate  string
	PaymentMethod string
	Remarks       string
}

// IncomeInsert is the cleaned income-creation data.
type IncomeInsert struct {
	UserID        int64
	CategoryID    int64
	Name          string
	Source        string
	Amount        float64
	ReceivedDate  time.Time
	PaymentMethod domain.PaymentMethod
	Remarks       string
}

// IncomeEditInput is the untrusted income-edit shape. Nil fields were not
// submitted.
type IncomeEditInput struct {
	CategoryID    *int64
	Name          *string
	Source        *string
	Amount        *string
	ReceivedDate  *string
	PaymentMethod *string
	Remarks       *string
}

// ExpenseInsertInput is the untrusted expense-creation shape.
type ExpenseInsertInput struct {
	UserID        int64
	CategoryID    int64
	Name          string
	Payee         string
	Amount        string
	ExpenseDate   string
	PaymentMethod string
	Remarks       string
}

// ExpenseInsert is the cleaned expense-creation data.
type ExpenseInsert struct {
	UserID        int64
	CategoryID    int64
	Name          string
	Payee         string
	Amount        float64
	ExpenseDate   time.Time
	PaymentMethod domain.PaymentMethod
	Remarks       string
}

// ExpenseEditInput is the untrusted expense-edit shape.
type ExpenseEditInput struct {
	CategoryID    *int64
	Name          *string
	Payee         *string
	Amount        *string
	ExpenseDate   *string
	PaymentMethod *string
	Remarks       *string
}

// DebtPaymentInsertInput is the untrusted debt-payment shape. The funding
// expense is created by the use case, so only the debt reference arrives
// from the client.
type DebtPaymentInsertInput struct {
	UserID int64
	DebtID int64
}

// DebtPaymentInsert is the cleaned debt-payment data. PymtType is always
// deposit for debt reduction flows.
type DebtPaymentInsert struct {
	UserID   int64
	DebtID   int64
	PymtType domain.PaymentType
}

// DebtInsertInput is the untrusted debt-creation shape.
type DebtInsertInput struct {
	UserID       int64
	Lender       string
	Name         string
	Principal    string
	InterestRate string
	StartDate    string
	DueDate      string
}

// DebtInsert is the cleaned debt-creation data.
type DebtInsert struct {
	UserID       int64
	Lender       string
	Name         string
	Principal    float64
	InterestRate float64
	StartDate    time.Time
	DueDate      time.Time
}

// DebtEditInput is the untrusted debt-terms-edit shape.
type DebtEditInput struct {
	Principal    *string
	InterestRate *string
}

// DebtEdit is the cleaned debt-terms-edit data.
type DebtEdit struct {
	Principal    *float64
	InterestRate *float64
}

// TransactionPolicy validates income, expense, debt and debt-payment
// mutations.
type TransactionPolicy struct{}

// ValidateInsertIncome checks the income-creation form.
func (TransactionPolicy) ValidateInsertIncome(in IncomeInsertInput) (IncomeInsert, error) {
	if err := requireFields(
		idField("user_id", in.UserID),
		idField("category_id", in.CategoryID),
		stringField("name", in.Name),
		stringField("source", in.Source),
		stringField("amount", in.Amount),
		stringField("payment_method", in.PaymentMethod),
		stringField("received_date", in.ReceivedDate),
	); err != nil {
		return IncomeInsert{}, err
	}

	userID, err := ValidateID(in.UserID, "User ID")
	if err != nil {
		return IncomeInsert{}, err
	}
	categoryID, err := ValidateID(in.CategoryID, "Category ID")
	if err != nil {
		return IncomeInsert{}, err
	}
	name, err := ValidateString(in.Name, "Income Name", 1)
	if err != nil {
		return IncomeInsert{}, err
	}
	source, err := ValidateString(in.Source, "Income Source", 1)
	if err != nil {
		return IncomeInsert{}, err
	}
	amount, err := ValidateNumeric(in.Amount, "Amount", false)
	if err != nil {
		return IncomeInsert{}, err
	}
	receivedDate, err := ValidateDate(in.ReceivedDate, "Received Date", false, true)
	if err != nil {
		return IncomeInsert{}, err
	}
	method, err := ValidatePaymentMethod(in.PaymentMethod)
	if err != nil {
		return IncomeInsert{}, err
	}

	return IncomeInsert{
		UserID:        userID,
		CategoryID:    categoryID,
		Name:          name,
		Source:        source,
		Amount:        amount,
		ReceivedDate:  receivedDate,
		PaymentMethod: method,
		Remarks:       strings.TrimSpace(in.Remarks),
	}, nil
}

// ValidateIncomeEdit checks a partial income update against a fetched
// income row.
func (TransactionPolicy) ValidateIncomeEdit(in IncomeEditInput, income *domain.Income) (domain.IncomeUpdate, error) {
	if income == nil {
		return domain.IncomeUpdate{}, Errorf("Income not found")
	}
	if in.CategoryID == nil && in.Name == nil && in.Source == nil && in.Amount == nil &&
		in.ReceivedDate == nil && in.PaymentMethod == nil && in.Remarks == nil {
		return domain.IncomeUpdate{}, Errorf("No valid fields provided for update")
	}

	var out domain.IncomeUpdate
	if in.CategoryID != nil {
		id, err := ValidateID(*in.CategoryID, "Category ID")
		if err != nil {
			return domain.IncomeUpdate{}, err
		}
		out.CategoryID = &id
	}
	if in.Name != nil {
		name, err := ValidateString(*in.Name, "Income Name", 1)
		if err != nil {
			return domain.IncomeUpdate{}, err
		}
		out.Name = &name
	}
	if in.Source != nil {
		source, err := ValidateString(*in.Source, "Income Source", 1)
		if err != nil {
			return domain.IncomeUpdate{}, err
		}
		out.Source = &source
	}
	if in.Amount != nil {
		amount, err := ValidateNumeric(*in.Amount, "Amount", false)
		if err != nil {
			return domain.IncomeUpdate{}, err
		}
		out.Amount = &amount
	}
	if in.ReceivedDate != nil {
		date, err := ValidateDate(*in.ReceivedDate, "Received Date", false, true)
		if err != nil {
			return domain.IncomeUpdate{}, err
		}
		out.ReceivedDate = &date
	}
	if in.PaymentMethod != nil {
		method, err := ValidatePaymentMethod(*in.PaymentMethod)
		if err != nil {
			return domain.IncomeUpdate{}, err
		}
		raw := string(method)
		out.PaymentMethod = &raw
	}
	if in.Remarks != nil {
		remarks := strings.TrimSpace(*in.Remarks)
		out.Remarks = &remarks
	}
	return out, nil
}

// ValidateIncomeDeletion rejects deleting an income row that is missing
// or referenced by a debt payment or saving transaction.
func (TransactionPolicy) ValidateIncomeDeletion(income *domain.Income, usedByDebtPayment, usedBySavingTxn bool) error {
	if income == nil {
		return Errorf("No Income record found")
	}
	if usedByDebtPayment {
		return Errorf("Cannot delete Income record used in debt payments")
	}
	if usedBySavingTxn {
		return Errorf("Cannot delete Income record used in saving transactions")
	}
	return nil
}

// ValidateInsertExpense checks the expense-creation form.
func (TransactionPolicy) ValidateInsertExpense(in ExpenseInsertInput) (ExpenseInsert, error) {
	if err := requireFields(
		idField("user_id", in.UserID),
		idField("category_id", in.CategoryID),
		stringField("name", in.Name),
		stringField("payee", in.Payee),
		stringField("amount", in.Amount),
		stringField("expense_date", in.ExpenseDate),
		stringField("payment_method", in.PaymentMethod),
	); err != nil {
		return ExpenseInsert{}, err
	}

	userID, err := ValidateID(in.UserID, "User ID")
	if err != nil {
		return ExpenseInsert{}, err
	}
	categoryID, err := ValidateID(in.CategoryID, "Category ID")
	if err != nil {
		return ExpenseInsert{}, err
	}
	name, err := ValidateString(in.Name, "Expense Name", 1)
	if err != nil {
		return ExpenseInsert{}, err
	}
	payee, err := ValidateString(in.Payee, "Expense Payee", 1)
	if err != nil {
		return ExpenseInsert{}, err
	}
	amount, err := ValidateNumeric(in.Amount, "Amount", false)
	if err != nil {
		return ExpenseInsert{}, err
	}
	expenseDate, err := ValidateDate(in.ExpenseDate, "Expense Date", false, true)
	if err != nil {
		return ExpenseInsert{}, err
	}
	method, err := ValidatePaymentMethod(in.PaymentMethod)
	if err != nil {
		return ExpenseInsert{}, err
	}

	return ExpenseInsert{
		UserID:        userID,
		CategoryID:    categoryID,
		Name:          name,
		Payee:         payee,
		Amount:        amount,
		ExpenseDate:   expenseDate,
		PaymentMethod: method,
		Remarks:       strings.TrimSpace(in.Remarks),
	}, nil
}

// ValidateExpenseEdit checks a partial expense update against a fetched
// expense row.
func (TransactionPolicy) ValidateExpenseEdit(in ExpenseEditInput, expense *domain.Expense) (domain.ExpenseUpdate, error) {
	if expense == nil {
		return domain.ExpenseUpdate{}, Errorf("Expense not found")
	}
	if in.CategoryID == nil && in.Name == nil && in.Payee == nil && in.Amount == nil &&
		in.ExpenseDate == nil && in.PaymentMethod == nil && in.Remarks == nil {
		return domain.ExpenseUpdate{}, Errorf("No valid fields provided for update")
	}

	var out domain.ExpenseUpdate
	if in.CategoryID != nil {
		id, err := ValidateID(*in.CategoryID, "Category ID")
		if err != nil {
			return domain.ExpenseUpdate{}, err
		}
		out.CategoryID = &id
	}
	if in.Name != nil {
		name, err := ValidateString(*in.Name, "Expense Name", 1)
		if err != nil {
			return domain.ExpenseUpdate{}, err
		}
		out.Name = &name
	}
	if in.Payee != nil {
		payee, err := ValidateString(*in.Payee, "Expense Payee", 1)
		if err != nil {
			return domain.ExpenseUpdate{}, err
		}
		out.Payee = &payee
	}
	if in.Amount != nil {
		amount, err := ValidateNumeric(*in.Amount, "Amount", false)
		if err != nil {
			return domain.ExpenseUpdate{}, err
		}
		out.Amount = &amount
	}
	if in.ExpenseDate != nil {
		date, err := ValidateDate(*in.ExpenseDate, "Expense Date", false, true)
		if err != nil {
			return domain.ExpenseUpdate{}, err
		}
		out.ExpenseDate = &date
	}
	if in.PaymentMethod != nil {
		method, err := ValidatePaymentMethod(*in.PaymentMethod)
		if err != nil {
			return domain.ExpenseUpdate{}, err
		}
		raw := string(method)
		out.PaymentMethod = &raw
	}
	if in.Remarks != nil {
		remarks := strings.TrimSpace(*in.Remarks)
		out.Remarks = &remarks
	}
	return out, nil
}

// ValidateExpenseDeletion rejects deleting an expense row that is missing
// or referenced by a debt payment or saving transaction.
func (TransactionPolicy) ValidateExpenseDeletion(expense *domain.Expense, usedByDebtPayment, usedBySavingTxn bool) error {
	if expense == nil {
		return Errorf("No Expense record found")
	}
	if usedByDebtPayment {
		return Errorf("Cannot delete Expense record used in debt payments")
	}
	if usedBySavingTxn {
		return Errorf("Cannot delete Expense record used in saving transactions")
	}
	return nil
}

// ValidateInsertDebtPayment checks the debt-payment form. Debt reduction
// flows are always typed as deposits.
func (TransactionPolicy) ValidateInsertDebtPayment(in DebtPaymentInsertInput) (DebtPaymentInsert, error) {
	if err := requireFields(
		idField("user_id", in.UserID),
		idField("debt_id", in.DebtID),
	); err != nil {
		return DebtPaymentInsert{}, err
	}

	userID, err := ValidateID(in.UserID, "User ID")
	if err != nil {
		return DebtPaymentInsert{}, err
	}
	debtID, err := ValidateID(in.DebtID, "Debt ID")
	if err != nil {
		return DebtPaymentInsert{}, err
	}
	pymtType, err := ValidatePaymentType(string(domain.PaymentTypeDeposit))
	if err != nil {
		return DebtPaymentInsert{}, err
	}

	return DebtPaymentInsert{
		UserID:   userID,
		DebtID:   debtID,
		PymtType: pymtType,
	}, nil
}

// ValidateInsertDebt checks the debt-creation form, including the
// principal floor and the interest-rate cap.
func (TransactionPolicy) ValidateInsertDebt(in DebtInsertInput) (DebtInsert, error) {
	if err := requireFields(
		idField("user_id", in.UserID),
		stringField("lender", in.Lender),
		stringField("principal", in.Principal),
		stringField("interest_rate", in.InterestRate),
		stringField("start_date", in.StartDate),
		stringField("due_date", in.DueDate),
	); err != nil {
		return DebtInsert{}, err
	}

	userID, err := ValidateID(in.UserID, "User ID")
	if err != nil {
		return DebtInsert{}, err
	}
	lender, err := ValidateString(in.Lender, "Lender", 3)
	if err != nil {
		return DebtInsert{}, err
	}
	principal, err := ValidateNumeric(in.Principal, "Principal", false)
	if err != nil {
		return DebtInsert{}, err
	}
	if principal < domain.MinDebtPrincipal {
		return DebtInsert{}, Errorf("Principal must be at least %.0f", domain.MinDebtPrincipal)
	}
	rate, err := ValidateNumeric(in.InterestRate, "Interest Rate", true)
	if err != nil {
		return DebtInsert{}, err
	}
	if rate > domain.MaxDebtInterestRate {
		return DebtInsert{}, Errorf("Interest Rate cannot exceed %.0f%%", domain.MaxDebtInterestRate)
	}
	startDate, err := ValidateDate(in.StartDate, "Start Date", false, true)
	if err != nil {
		return DebtInsert{}, err
	}
	dueDate, err := ValidateDate(in.DueDate, "Due Date", true, false)
	if err != nil {
		return DebtInsert{}, err
	}
	if !dueDate.After(startDate) {
		return DebtInsert{}, Errorf("Due Date must be after Start Date")
	}

	return DebtInsert{
		UserID:       userID,
		Lender:       lender,
		Name:         strings.TrimSpace(in.Name),
		Principal:    principal,
		InterestRate: rate,
		StartDate:    startDate,
		DueDate:      dueDate,
	}, nil
}

// ValidateDebtEdit checks a partial debt-terms update against a fetched
// debt row.
func (TransactionPolicy) ValidateDebtEdit(in DebtEditInput, debt *domain.Debt) (DebtEdit, error) {
	if debt == nil {
		return DebtEdit{}, Errorf("Debt not found")
	}
	if in.Principal == nil && in.InterestRate == nil {
		return DebtEdit{}, Errorf("No valid fields provided for update")
	}

	var out DebtEdit
	if in.Principal != nil {
		principal, err := ValidateNumeric(*in.Principal, "Principal", false)
		if err != nil {
			return DebtEdit{}, err
		}
		if principal < domain.MinDebtPrincipal {
			return DebtEdit{}, Errorf("Principal must be at least %.0f", domain.MinDebtPrincipal)
		}
		out.Principal = &principal
	}
	if in.InterestRate != nil {
		rate, err := ValidateNumeric(*in.InterestRate, "Interest Rate", true)
		if err != nil {
			return DebtEdit{}, err
		}
		if rate > domain.MaxDebtInterestRate {
			return DebtEdit{}, Errorf("Interest Rate cannot exceed %.0f%%", domain.MaxDebtInterestRate)
		}
		out.InterestRate = &rate
	}
	return out, nil
}

// ValidateDebtPresence rejects payments against a debt that was not found
// under the acting user.
func (TransactionPolicy) ValidateDebtPresence(debt *domain.Debt) error {
	if debt == nil {
		return Errorf("No Debt record found")
	}
	return nil
}
