package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cinefin/cinefin/internal/ledger/accounts"
	"github.com/cinefin/cinefin/internal/ledger/journal"
	"github.com/cinefin/cinefin/internal/ledger/reports"
	"github.com/cinefin/cinefin/internal/observability"
	"github.com/cinefin/cinefin/internal/platform/httpx"
)

// Handler exposes the accounting REST surface.
type Handler struct {
	logger   *slog.Logger
	accounts AccountService
	journal  JournalService
	reports  ReportService
	cache    *ReportCache
	metrics  *observability.Metrics
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, accountsSvc AccountService, journalSvc JournalService, reportsSvc ReportService, cache *ReportCache, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		accounts: accountsSvc,
		journal:  journalSvc,
		reports:  reportsSvc,
		cache:    cache,
		metrics:  metrics,
		validate: validator.New(),
	}
}

func (h *Handler) ListChartOfAccounts(w http.ResponseWriter, r *http.Request) {
	filter := accounts.ListFilter{}
	if v := r.URL.Query().Get("type"); v != "" {
		accountType := accounts.AccountType(v)
		if !accountType.Valid() {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown account type")
			return
		}
		filter.Type = &accountType
	}
	if r.URL.Query().Get("active_only") == "true" {
		filter.ActiveOnly = true
	}
	list, err := h.accounts.List(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"accounts": toAccountResponses(list)})
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	account, err := h.accounts.Create(r.Context(), req.toAccount())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"account": toAccountResponse(account)})
}

func (h *Handler) ListJournalEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := journal.ListFilter{}
	if q.Get("start_date") != "" || q.Get("end_date") != "" {
		start, err := parseDate(q.Get("start_date"), "start_date")
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		end, err := parseDate(q.Get("end_date"), "end_date")
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}
	if v := q.Get("reference_type"); v != "" {
		ref := journal.ReferenceType(v)
		filter.ReferenceType = &ref
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid limit")
			return
		}
		filter.Limit = limit
	}
	entries, err := h.journal.List(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"entries": toEntryResponses(entries)})
}

func (h *Handler) CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	input, err := req.toPostingInput()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	entry, err := h.journal.Post(r.Context(), input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	h.metrics.PostingRecorded(string(entry.ReferenceType))
	h.cache.Bust(r.Context())
	httpx.JSON(w, http.StatusCreated, map[string]any{"entry": toEntryResponse(entry)})
}

func (h *Handler) RecordTicketSale(w http.ResponseWriter, r *http.Request) {
	var req ticketSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	input := journal.TicketSaleInput{
		Amount:      req.Amount,
		Tickets:     req.Tickets,
		MovieTitle:  req.MovieTitle,
		Reference:   req.Reference,
		Username:    req.Username,
		Description: req.Description,
	}
	if req.Date != "" {
		d, err := parseDate(req.Date, "date")
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		input.Date = d
	}
	entry, err := h.journal.RecordTicketSale(r.Context(), input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	h.metrics.PostingRecorded(string(entry.ReferenceType))
	h.cache.Bust(r.Context())
	httpx.JSON(w, http.StatusCreated, map[string]any{"entry": toEntryResponse(entry)})
}

func (h *Handler) RecordExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	input := journal.ExpenseInput{
		Description:      req.Description,
		Amount:           req.Amount,
		ExpenseAccountID: req.ExpenseAccountID,
		PaymentAccountID: req.PaymentAccountID,
		Reference:        req.Reference,
		CreatedBy:        req.CreatedBy,
	}
	if req.Date != "" {
		d, err := parseDate(req.Date, "date")
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		input.Date = d
	}
	entry, err := h.journal.RecordExpense(r.Context(), input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	h.metrics.PostingRecorded(string(entry.ReferenceType))
	h.cache.Bust(r.Context())
	httpx.JSON(w, http.StatusCreated, map[string]any{"entry": toEntryResponse(entry)})
}

func (h *Handler) AccountBalances(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.dateRange(w, r)
	if !ok {
		return
	}
	balances, err := h.reports.AccountBalances(r.Context(), start, end)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"balances": balances})
}

func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.dateRange(w, r)
	if !ok {
		return
	}
	key := fmt.Sprintf("tb:%s:%s", start.Format(dateLayout), end.Format(dateLayout))
	var cached reports.TrialBalance
	if h.cache.Get(r.Context(), key, &cached) {
		httpx.JSON(w, http.StatusOK, map[string]any{"report": cached})
		return
	}
	result, err := singleflightReport(r.Context(), key, func(ctx context.Context) (any, error) {
		return h.reports.TrialBalance(ctx, start, end)
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	report := result.(reports.TrialBalance)
	h.cache.Set(r.Context(), key, report)
	httpx.JSON(w, http.StatusOK, map[string]any{"report": report})
}

func (h *Handler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.dateRange(w, r)
	if !ok {
		return
	}
	key := fmt.Sprintf("is:%s:%s", start.Format(dateLayout), end.Format(dateLayout))
	var cached reports.IncomeStatement
	if h.cache.Get(r.Context(), key, &cached) {
		httpx.JSON(w, http.StatusOK, map[string]any{"report": cached})
		return
	}
	result, err := singleflightReport(r.Context(), key, func(ctx context.Context) (any, error) {
		return h.reports.IncomeStatement(ctx, start, end)
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	report := result.(reports.IncomeStatement)
	h.cache.Set(r.Context(), key, report)
	httpx.JSON(w, http.StatusOK, map[string]any{"report": report})
}

func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDate(r.URL.Query().Get("as_of_date"), "as_of_date")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	key := fmt.Sprintf("bs:%s", asOf.Format(dateLayout))
	var cached reports.BalanceSheet
	if h.cache.Get(r.Context(), key, &cached) {
		httpx.JSON(w, http.StatusOK, map[string]any{"report": cached})
		return
	}
	result, err := singleflightReport(r.Context(), key, func(ctx context.Context) (any, error) {
		return h.reports.BalanceSheet(ctx, asOf)
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	report := result.(reports.BalanceSheet)
	h.cache.Set(r.Context(), key, report)
	httpx.JSON(w, http.StatusOK, map[string]any{"report": report})
}

func (h *Handler) dateRange(w http.ResponseWriter, r *http.Request) (start, end time.Time, ok bool) {
	q := r.URL.Query()
	start, err := parseDate(q.Get("start_date"), "start_date")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return start, end, false
	}
	end, err = parseDate(q.Get("end_date"), "end_date")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return start, end, false
	}
	return start, end, true
}
