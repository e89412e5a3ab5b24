package finance

// NetWorth is the headline wealth figure:
// income - expenses - debt principal + savings.
//
// NetWorth(10000, 3000, 2000, 1500) == 6500.
func NetWorth(totalIncome, totalExpenses, totalDebtPrincipal, totalSavings float64) float64 {
	return totalIncome - totalExpenses - totalDebtPrincipal + totalSavings
}

// NetValue is the dashboard figure: income - expenses - saving deposits.
func NetValue(totalIncome, totalExpense, totalSavingDeposits float64) float64 {
	return totalIncome - totalExpense - totalSavingDeposits
}

// NetIncome is income minus expenses, ignoring debts and savings.
func NetIncome(totalIncome, totalExpenses float64) float64 {
	return totalIncome - totalExpenses
}

// SavingsRate returns the share of income saved, as a percentage capped
// at 100. Zero or negative income yields 0.
func SavingsRate(totalIncome, totalSavings float64) float64 {
	if totalIncome <= 0 {
		return 0
	}
	return min(100, totalSavings/totalIncome*100)
}

// ExpenseRatio returns expenses as a percentage of income. Unlike
// SavingsRate it is uncapped: spending beyond income reads above 100.
// Zero or negative income yields 0.
func ExpenseRatio(totalIncome, totalExpenses float64) float64 {
	if totalIncome <= 0 {
		return 0
	}
	return totalExpenses / totalIncome * 100
}

// DebtToIncomeRatio returns active debt principal as a percentage of
// income. Zero or negative income yields 0.
func DebtToIncomeRatio(totalDebtPrincipal, totalIncome float64) float64 {
	if totalIncome <= 0 {
		return 0
	}
	return totalDebtPrincipal / totalIncome * 100
}
