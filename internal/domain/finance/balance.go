package finance

// DefaultMinimumBalance is the buffer kept out of the available balance,
// in PHP.
const DefaultMinimumBalance = 500.0

// CurrentBalance is what the user has on hand:
// income - expenses - debt payments - saving deposits.
// It can go negative when spending outruns earnings.
func CurrentBalance(totalIncome, totalExpense, totalDebtPayments, totalSavingDeposits float64) float64 {
	return totalIncome - totalExpense - totalDebtPayments - totalSavingDeposits
}

// AvailableBalance is the current balance minus a minimum buffer,
// floored at zero.
func AvailableBalance(
	totalIncome, totalExpense, totalDebtPayments, totalSavingDeposits, minimumBalance float64,
) float64 {
	current := CurrentBalance(totalIncome, totalExpense, totalDebtPayments, totalSavingDeposits)
	return max(current-minimumBalance, 0)
}
