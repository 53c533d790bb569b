package http

import (
	"fmt"
	"time"

	"github.com/cinefin/cinefin/internal/ledger/accounts"
	"github.com/cinefin/cinefin/internal/ledger/journal"
)

const dateLayout = "2006-01-02"

func parseDate(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing parameter: %s", name)
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: expected YYYY-MM-DD", name)
	}
	return d, nil
}

type createAccountRequest struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	AccountType string  `json:"account_type" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentID    *string `json:"parent_id"`
	BalanceType string  `json:"balance_type" validate:"required,oneof=DEBIT CREDIT"`
	Description *string `json:"description"`
}

func (req createAccountRequest) toAccount() accounts.Account {
	return accounts.Account{
		ID:          req.ID,
		Name:        req.Name,
		Type:        accounts.AccountType(req.AccountType),
		ParentID:    req.ParentID,
		BalanceType: accounts.BalanceType(req.BalanceType),
		Description: req.Description,
		IsActive:    true,
	}
}

type journalLineRequest struct {
	AccountID   string  `json:"account_id" validate:"required"`
	Debit       float64 `json:"debit" validate:"gte=0"`
	Credit      float64 `json:"credit" validate:"gte=0"`
	Description string  `json:"description"`
}

type createEntryRequest struct {
	EntryDate     string               `json:"entry_date"`
	Description   string               `json:"description" validate:"required"`
	ReferenceType string               `json:"reference_type"`
	ReferenceID   *string              `json:"reference_id"`
	CreatedBy     string               `json:"created_by"`
	Lines         []journalLineRequest `json:"lines" validate:"required,dive"`
}

func (req createEntryRequest) toPostingInput() (journal.PostingInput, error) {
	input := journal.PostingInput{
		Description:   req.Description,
		ReferenceType: journal.ReferenceType(req.ReferenceType),
		ReferenceID:   req.ReferenceID,
		CreatedBy:     req.CreatedBy,
	}
	if req.EntryDate != "" {
		d, err := parseDate(req.EntryDate, "entry_date")
		if err != nil {
			return journal.PostingInput{}, err
		}
		input.EntryDate = d
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, journal.LineInput{
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		})
	}
	return input, nil
}

type ticketSaleRequest struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Tickets     int     `json:"tickets" validate:"required,gte=1"`
	MovieTitle  string  `json:"movie_title" validate:"required"`
	Reference   string  `json:"reference"`
	Username    string  `json:"username"`
	Description string  `json:"description"`
}

type expenseRequest struct {
	Date             string  `json:"date"`
	Description      string  `json:"description" validate:"required"`
	Amount           float64 `json:"amount" validate:"required,gt=0"`
	ExpenseAccountID string  `json:"expense_account_id" validate:"required"`
	PaymentAccountID string  `json:"payment_account_id"`
	Reference        *string `json:"reference"`
	CreatedBy        string  `json:"created_by"`
}

type accountResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	AccountType string  `json:"account_type"`
	ParentID    *string `json:"parent_id,omitempty"`
	BalanceType string  `json:"balance_type"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

func toAccountResponse(a accounts.Account) accountResponse {
	return accountResponse{
		ID:          a.ID,
		Name:        a.Name,
		AccountType: string(a.Type),
		ParentID:    a.ParentID,
		BalanceType: string(a.BalanceType),
		Description: a.Description,
		IsActive:    a.IsActive,
	}
}

func toAccountResponses(list []accounts.Account) []accountResponse {
	out := make([]accountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccountResponse(a))
	}
	return out
}

type lineResponse struct {
	ID          int64   `json:"id"`
	AccountID   string  `json:"account_id"`
	AccountName string  `json:"account_name"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
	Description string  `json:"description"`
}

type entryResponse struct {
	ID            int64          `json:"id"`
	EntryDate     string         `json:"entry_date"`
	Description   string         `json:"description"`
	ReferenceType string         `json:"reference_type"`
	ReferenceID   *string        `json:"reference_id,omitempty"`
	CreatedBy     string         `json:"created_by"`
	Lines         []lineResponse `json:"lines"`
}

func toEntryResponse(e journal.Entry) entryResponse {
	resp := entryResponse{
		ID:            e.ID,
		EntryDate:     e.EntryDate.Format(dateLayout),
		Description:   e.Description,
		ReferenceType: string(e.ReferenceType),
		ReferenceID:   e.ReferenceID,
		CreatedBy:     e.CreatedBy,
		Lines:         make([]lineResponse, 0, len(e.Lines)),
	}
	for _, line := range e.Lines {
		resp.Lines = append(resp.Lines, lineResponse{
			ID:          line.ID,
			AccountID:   line.AccountID,
			AccountName: line.AccountName,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		})
	}
	return resp
}

func toEntryResponses(list []journal.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEntryResponse(e))
	}
	return out
}
