package http

import "github.com/go-chi/chi/v5"

// MountRoutes wires the accounting API under the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/chart-of-accounts", h.ListChartOfAccounts)
	r.Post("/chart-of-accounts", h.CreateAccount)
	r.Get("/journal-entries", h.ListJournalEntries)
	r.Post("/journal-entries", h.CreateJournalEntry)
	r.Post("/ticket-sales", h.RecordTicketSale)
	r.Post("/expenses", h.RecordExpense)
	r.Get("/account-balances", h.AccountBalances)
	r.Get("/reports/trial-balance", h.TrialBalance)
	r.Get("/reports/income-statement", h.IncomeStatement)
	r.Get("/reports/balance-sheet", h.BalanceSheet)
}
