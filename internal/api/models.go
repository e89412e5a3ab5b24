package api

// Common request/response structures. Amounts, rates and dates travel as
// strings; the policy layer owns parsing and range checks, so handlers
// pass them through untouched. The acting user ID always comes from the
// authenticated context, never from the payload.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Firstname       string  `json:"firstname"`
	Lastname        string  `json:"lastname"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword *string `json:"confirm_password,omitempty"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID int64 `json:"user_id"`

	// Token is the JWT used for API authorization
	Token string `json:"token"`
}

// ProfileUpdateRequest defines the payload for the profile edit endpoint.
type ProfileUpdateRequest struct {
	Firstname *string `json:"firstname,omitempty"`
	Lastname  *string `json:"lastname,omitempty"`
}

// CategoryRequest defines the payload for category creation.
type CategoryRequest struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryUpdateRequest defines the payload for category edits.
type CategoryUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IncomeRequest defines the payload for income creation.
type IncomeRequest struct {
	CategoryID    int64  `json:"category_id"`
	Name          string `json:"name"`
	Source        string `json:"source"`
	Amount        string `json:"amount"`
	ReceivedDate  string `json:"received_date"`
	PaymentMethod string `json:"payment_method"`
	Remarks       string `json:"remarks,omitempty"`
}

// IncomeUpdateRequest defines the payload for income edits.
type IncomeUpdateRequest struct {
	CategoryID    *int64  `json:"category_id,omitempty"`
	Name          *string `json:"name,omitempty"`
	Source        *string `json:"source,omitempty"`
	Amount        *string `json:"amount,omitempty"`
	ReceivedDate  *string `json:"received_date,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	Remarks       *string `json:"remarks,omitempty"`
}

// ExpenseRequest defines the payload for expense creation.
type ExpenseRequest struct {
	CategoryID    int64  `json:"category_id"`
	Name          string `json:"name"`
	Payee         string `json:"payee"`
	Amount        string `json:"amount"`
	ExpenseDate   string `json:"expense_date"`
	PaymentMethod string `json:"payment_method"`
	Remarks       string `json:"remarks,omitempty"`
}

// ExpenseUpdateRequest defines the payload for expense edits.
type ExpenseUpdateRequest struct {
	CategoryID    *int64  `json:"category_id,omitempty"`
	Name          *string `json:"name,omitempty"`
	Payee         *string `json:"payee,omitempty"`
	Amount        *string `json:"amount,omitempty"`
	ExpenseDate   *string `json:"expense_date,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	Remarks       *string `json:"remarks,omitempty"`
}

// DebtRequest defines the payload for debt creation.
type DebtRequest struct {
	Lender       string `json:"lender"`
	Name         string `json:"name"`
	Principal    string `json:"principal"`
	InterestRate string `json:"interest_rate"`
	StartDate    string `json:"start_date"`
	DueDate      string `json:"due_date"`
}

// DebtUpdateRequest defines the payload for debt-terms edits.
type DebtUpdateRequest struct {
	Principal    *string `json:"principal,omitempty"`
	InterestRate *string `json:"interest_rate,omitempty"`
}

// DebtPaymentRequest defines the payload for recording a debt payment.
type DebtPaymentRequest struct {
	Amount        string `json:"amount"`
	PaymentDate   string `json:"payment_date"`
	PaymentMethod string `json:"payment_method"`
	Remarks       string `json:"remarks,omitempty"`
}

// GoalRequest defines the payload for saving goal creation.
type GoalRequest struct {
	Name         string `json:"name"`
	TargetAmount string `json:"target_amount"`
	TargetDate   string `json:"target_date"`
	Remarks      string `json:"remarks,omitempty"`
}

// GoalUpdateRequest defines the payload for saving goal edits.
type GoalUpdateRequest struct {
	Name         *string `json:"name,omitempty"`
	TargetAmount *string `json:"target_amount,omitempty"`
	TargetDate   *string `json:"target_date,omitempty"`
	Remarks      *string `json:"remarks,omitempty"`
}

// SavingTransactionRequest defines the payload for goal deposits and
// withdrawals.
type SavingTransactionRequest struct {
	Amount  string `json:"amount"`
	TxtDate string `json:"txt_date"`
	Remarks string `json:"remarks,omitempty"`
}
