package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinefin/cinefin/internal/ledger/accounts"
	"github.com/cinefin/cinefin/internal/ledger/journal"
	"github.com/cinefin/cinefin/internal/ledger/reports"
	"github.com/cinefin/cinefin/internal/ledger/shared"
)

type stubAccounts struct {
	list       []accounts.Account
	lastFilter accounts.ListFilter
	err        error
}

func (s *stubAccounts) List(ctx context.Context, filter accounts.ListFilter) ([]accounts.Account, error) {
	s.lastFilter = filter
	return s.list, s.err
}

func (s *stubAccounts) Create(ctx context.Context, account accounts.Account) (accounts.Account, error) {
	if s.err != nil {
		return accounts.Account{}, s.err
	}
	return account, nil
}

type stubJournal struct {
	entry       journal.Entry
	lastPosting *journal.PostingInput
	err         error
}

func (s *stubJournal) List(ctx context.Context, filter journal.ListFilter) ([]journal.Entry, error) {
	return []journal.Entry{s.entry}, s.err
}

func (s *stubJournal) Post(ctx context.Context, input journal.PostingInput) (journal.Entry, error) {
	s.lastPosting = &input
	if s.err != nil {
		return journal.Entry{}, s.err
	}
	return s.entry, nil
}

func (s *stubJournal) RecordTicketSale(ctx context.Context, input journal.TicketSaleInput) (journal.Entry, error) {
	if s.err != nil {
		return journal.Entry{}, s.err
	}
	return s.entry, nil
}

func (s *stubJournal) RecordExpense(ctx context.Context, input journal.ExpenseInput) (journal.Entry, error) {
	if s.err != nil {
		return journal.Entry{}, s.err
	}
	return s.entry, nil
}

type stubReports struct {
	tb    reports.TrialBalance
	calls int
	err   error
}

func (s *stubReports) AccountBalances(ctx context.Context, start, end time.Time) ([]reports.AccountBalance, error) {
	return nil, s.err
}

func (s *stubReports) TrialBalance(ctx context.Context, start, end time.Time) (reports.TrialBalance, error) {
	s.calls++
	return s.tb, s.err
}

func (s *stubReports) IncomeStatement(ctx context.Context, start, end time.Time) (reports.IncomeStatement, error) {
	s.calls++
	return reports.IncomeStatement{StartDate: start, EndDate: end}, s.err
}

func (s *stubReports) BalanceSheet(ctx context.Context, asOf time.Time) (reports.BalanceSheet, error) {
	s.calls++
	return reports.BalanceSheet{AsOfDate: asOf, IsBalanced: true}, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestServer(t *testing.T, accountsSvc AccountService, journalSvc JournalService, reportsSvc ReportService, cache *ReportCache) *httptest.Server {
	t.Helper()
	handler := NewHandler(testLogger(), accountsSvc, journalSvc, reportsSvc, cache, nil)
	r := chi.NewRouter()
	r.Route("/api/accounting", handler.MountRoutes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestCache(t *testing.T) *ReportCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCache(client, time.Minute)
}

func sampleEntry() journal.Entry {
	ref := "TCK-1"
	return journal.Entry{
		ID:            7,
		EntryDate:     time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Description:   "Ticket sale - The Last Reel",
		ReferenceType: journal.ReferencePurchase,
		ReferenceID:   &ref,
		CreatedBy:     "cashier1",
		Lines: []journal.Line{
			{ID: 1, EntryID: 7, AccountID: "1.1.01", AccountName: "Cash", Debit: 20},
			{ID: 2, EntryID: 7, AccountID: "4.1.01", AccountName: "Ticket Revenue", Credit: 20},
		},
	}
}

func TestCreateJournalEntry(t *testing.T) {
	journalSvc := &stubJournal{entry: sampleEntry()}
	srv := newTestServer(t, &stubAccounts{}, journalSvc, &stubReports{}, nil)

	body := `{
		"entry_date": "2025-03-12",
		"description": "Ticket sale - The Last Reel",
		"lines": [
			{"account_id": "1.1.01", "debit": 20},
			{"account_id": "4.1.01", "credit": 20}
		]
	}`
	resp, err := http.Post(srv.URL+"/api/accounting/journal-entries", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NotNil(t, journalSvc.lastPosting)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), journalSvc.lastPosting.EntryDate)
	require.Len(t, journalSvc.lastPosting.Lines, 2)

	var payload struct {
		Entry entryResponse `json:"entry"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, int64(7), payload.Entry.ID)
	assert.Equal(t, "Cash", payload.Entry.Lines[0].AccountName)
}

func TestCreateJournalEntryUnbalanced(t *testing.T) {
	journalSvc := &stubJournal{err: fmt.Errorf("%w: debits 100.00, credits 90.00", shared.ErrUnbalanced)}
	srv := newTestServer(t, &stubAccounts{}, journalSvc, &stubReports{}, nil)

	body := `{
		"description": "bad entry",
		"lines": [
			{"account_id": "1.1.01", "debit": 100},
			{"account_id": "4.1.01", "credit": 90}
		]
	}`
	resp, err := http.Post(srv.URL+"/api/accounting/journal-entries", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var problem struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
	assert.Contains(t, problem.Detail, "debits 100.00")
	assert.Contains(t, problem.Detail, "credits 90.00")
}

func TestCreateJournalEntryRejectsMissingDescription(t *testing.T) {
	srv := newTestServer(t, &stubAccounts{}, &stubJournal{}, &stubReports{}, nil)
	resp, err := http.Post(srv.URL+"/api/accounting/journal-entries", "application/json", bytes.NewBufferString(`{"lines":[]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateAccountConflict(t *testing.T) {
	srv := newTestServer(t, &stubAccounts{err: shared.ErrAccountExists}, &stubJournal{}, &stubReports{}, nil)
	body := `{"id":"1.1.01","name":"Cash","account_type":"ASSET","balance_type":"DEBIT"}`
	resp, err := http.Post(srv.URL+"/api/accounting/chart-of-accounts", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestListChartOfAccountsFilter(t *testing.T) {
	accountsSvc := &stubAccounts{}
	srv := newTestServer(t, accountsSvc, &stubJournal{}, &stubReports{}, nil)

	resp, err := http.Get(srv.URL + "/api/accounting/chart-of-accounts?type=REVENUE&active_only=true")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, accountsSvc.lastFilter.Type)
	assert.Equal(t, accounts.AccountTypeRevenue, *accountsSvc.lastFilter.Type)
	assert.True(t, accountsSvc.lastFilter.ActiveOnly)
}

func TestTrialBalanceRequiresDateRange(t *testing.T) {
	srv := newTestServer(t, &stubAccounts{}, &stubJournal{}, &stubReports{}, nil)
	resp, err := http.Get(srv.URL + "/api/accounting/reports/trial-balance")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTrialBalanceCachesResult(t *testing.T) {
	reportsSvc := &stubReports{tb: reports.TrialBalance{TotalDebits: 35, TotalCredits: 35, IsBalanced: true}}
	srv := newTestServer(t, &stubAccounts{}, &stubJournal{}, reportsSvc, newTestCache(t))

	url := srv.URL + "/api/accounting/reports/trial-balance?start_date=2025-03-01&end_date=2025-03-31"
	for i := 0; i < 2; i++ {
		resp, err := http.Get(url)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	assert.Equal(t, 1, reportsSvc.calls, "second read must come from cache")
}

func TestPostingBustsReportCache(t *testing.T) {
	reportsSvc := &stubReports{tb: reports.TrialBalance{IsBalanced: true}}
	journalSvc := &stubJournal{entry: sampleEntry()}
	srv := newTestServer(t, &stubAccounts{}, journalSvc, reportsSvc, newTestCache(t))

	url := srv.URL + "/api/accounting/reports/trial-balance?start_date=2025-03-01&end_date=2025-03-31"
	resp, err := http.Get(url)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 1, reportsSvc.calls)

	body := `{
		"description": "sale",
		"lines": [
			{"account_id": "1.1.01", "debit": 20},
			{"account_id": "4.1.01", "credit": 20}
		]
	}`
	resp, err = http.Post(srv.URL+"/api/accounting/journal-entries", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(url)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 2, reportsSvc.calls, "posting must invalidate cached reports")
}

func TestBalanceSheetRequiresAsOfDate(t *testing.T) {
	srv := newTestServer(t, &stubAccounts{}, &stubJournal{}, &stubReports{}, nil)
	resp, err := http.Get(srv.URL + "/api/accounting/reports/balance-sheet")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordExpense(t *testing.T) {
	journalSvc := &stubJournal{entry: sampleEntry()}
	srv := newTestServer(t, &stubAccounts{}, journalSvc, &stubReports{}, nil)

	body := `{"description":"Projector maintenance","amount":15,"expense_account_id":"5.1.01"}`
	resp, err := http.Post(srv.URL+"/api/accounting/expenses", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}
