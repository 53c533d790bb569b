package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinefin/cinefin/internal/ledger/shared"
)

type mockRepository struct {
	accounts map[string]Account
}

func newMockRepository() *mockRepository {
	return &mockRepository{accounts: make(map[string]Account)}
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]Account, error) {
	var out []Account
	for _, a := range m.accounts {
		if filter.Type != nil && a.Type != *filter.Type {
			continue
		}
		if filter.ActiveOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return Account{}, shared.ErrAccountNotFound
	}
	return a, nil
}

func (m *mockRepository) Create(ctx context.Context, account Account) error {
	if _, ok := m.accounts[account.ID]; ok {
		return shared.ErrAccountExists
	}
	m.accounts[account.ID] = account
	return nil
}

func TestCreateStoresAccount(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	parent := "4.1"
	created, err := svc.Create(context.Background(), Account{
		ID:          "4.1.02",
		Name:        "Concession Revenue",
		Type:        AccountTypeRevenue,
		ParentID:    &parent,
		BalanceType: BalanceTypeCredit,
		IsActive:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "4.1.02", created.ID)

	got, err := svc.Get(context.Background(), "4.1.02")
	require.NoError(t, err)
	assert.Equal(t, "Concession Revenue", got.Name)
}

func TestCreateValidatesInput(t *testing.T) {
	svc := NewService(newMockRepository())

	cases := []struct {
		name    string
		account Account
	}{
		{"missing id", Account{Name: "Cash", Type: AccountTypeAsset, BalanceType: BalanceTypeDebit}},
		{"missing name", Account{ID: "1.1.01", Type: AccountTypeAsset, BalanceType: BalanceTypeDebit}},
		{"bad type", Account{ID: "1.1.01", Name: "Cash", Type: "CONTRA", BalanceType: BalanceTypeDebit}},
		{"bad balance type", Account{ID: "1.1.01", Name: "Cash", Type: AccountTypeAsset, BalanceType: "BOTH"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.account)
			assert.Error(t, err)
		})
	}
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	svc := NewService(newMockRepository())
	account := Account{ID: "1.1.01", Name: "Cash", Type: AccountTypeAsset, BalanceType: BalanceTypeDebit, IsActive: true}

	_, err := svc.Create(context.Background(), account)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), account)
	assert.ErrorIs(t, err, shared.ErrAccountExists)
}

func TestListFiltersByTypeAndActive(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	seed := []Account{
		{ID: "1.1.01", Name: "Cash", Type: AccountTypeAsset, BalanceType: BalanceTypeDebit, IsActive: true},
		{ID: "1.1.09", Name: "Legacy Cash Drawer", Type: AccountTypeAsset, BalanceType: BalanceTypeDebit, IsActive: false},
		{ID: "4.1.01", Name: "Ticket Revenue", Type: AccountTypeRevenue, BalanceType: BalanceTypeCredit, IsActive: true},
	}
	for _, a := range seed {
		_, err := svc.Create(ctx, a)
		require.NoError(t, err)
	}

	assetType := AccountTypeAsset
	active, err := svc.List(ctx, ListFilter{Type: &assetType, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "1.1.01", active[0].ID)

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestNormalSide(t *testing.T) {
	assert.Equal(t, BalanceTypeDebit, NormalSide(AccountTypeAsset))
	assert.Equal(t, BalanceTypeDebit, NormalSide(AccountTypeExpense))
	assert.Equal(t, BalanceTypeCredit, NormalSide(AccountTypeLiability))
	assert.Equal(t, BalanceTypeCredit, NormalSide(AccountTypeEquity))
	assert.Equal(t, BalanceTypeCredit, NormalSide(AccountTypeRevenue))
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 1, Account{ID: "1"}.Depth())
	assert.Equal(t, 2, Account{ID: "1.1"}.Depth())
	assert.Equal(t, 3, Account{ID: "1.1.01"}.Depth())
}
