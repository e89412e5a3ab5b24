package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pitaka-app/pitaka-api/internal/api"
	apiMiddleware "github.com/pitaka-app/pitaka-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	categoryHandler := api.NewCategoryHandler(app.categoryService, app.logger)
	incomeHandler := api.NewIncomeHandler(app.incomeService, app.logger)
	expenseHandler := api.NewExpenseHandler(app.expenseService, app.logger)
	debtHandler := api.NewDebtHandler(app.debtService, app.debtPaymentService, app.logger)
	savingHandler := api.NewSavingHandler(app.savingService, app.logger)
	dashboardHandler := api.NewDashboardHandler(app.dashboardService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users/me", userHandler.GetProfile)
			r.Put("/users/me", userHandler.UpdateProfile)
			r.Delete("/users/me", userHandler.DeleteAccount)

			r.Post("/categories", categoryHandler.CreateCategory)
			r.Get("/categories", categoryHandler.ListCategories)
			r.Get("/categories/{id}", categoryHandler.GetCategory)
			r.Put("/categories/{id}", categoryHandler.UpdateCategory)
			r.Delete("/categories/{id}", categoryHandler.DeleteCategory)

			r.Post("/incomes", incomeHandler.CreateIncome)
			r.Get("/incomes", incomeHandler.ListIncomes)
			r.Get("/incomes/{id}", incomeHandler.GetIncome)
			r.Put("/incomes/{id}", incomeHandler.UpdateIncome)
			r.Delete("/incomes/{id}", incomeHandler.DeleteIncome)

			r.Post("/expenses", expenseHandler.CreateExpense)
			r.Get("/expenses", expenseHandler.ListExpenses)
			r.Get("/expenses/{id}", expenseHandler.GetExpense)
			r.Put("/expenses/{id}", expenseHandler.UpdateExpense)
			r.Delete("/expenses/{id}", expenseHandler.DeleteExpense)

			r.Post("/debts", debtHandler.CreateDebt)
			r.Get("/debts", debtHandler.ListDebts)
			r.Get("/debts/{id}", debtHandler.GetDebt)
			r.Put("/debts/{id}", debtHandler.UpdateDebt)
			r.Delete("/debts/{id}", debtHandler.DeleteDebt)
			r.Post("/debts/{id}/close", debtHandler.CloseDebt)
			r.Post("/debts/{id}/reopen", debtHandler.ReopenDebt)
			r.Post("/debts/{id}/payments", debtHandler.CreateDebtPayment)
			r.Get("/debts/{id}/payments", debtHandler.ListDebtPayments)

			r.Post("/goals", savingHandler.CreateGoal)
			r.Get("/goals", savingHandler.ListGoals)
			r.Get("/goals/{id}", savingHandler.GetGoal)
			r.Put("/goals/{id}", savingHandler.UpdateGoal)
			r.Delete("/goals/{id}", savingHandler.DeleteGoal)
			r.Post("/goals/{id}/deposit", savingHandler.Deposit)
			r.Post("/goals/{id}/withdraw", savingHandler.Withdraw)
			r.Get("/goals/{id}/transactions", savingHandler.ListGoalTransactions)

			r.Get("/dashboard", dashboardHandler.GetDashboard)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
