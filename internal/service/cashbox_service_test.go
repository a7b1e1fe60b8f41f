package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/apierror"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/dto"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

func TestDepositUpdatesBalanceAndLedger(t *testing.T) {
	repo := newMemCashboxRepo()
	svc := NewCashboxService(repo)

	resp, err := svc.Deposit(context.Background(), dto.DepositRequest{
		Amount:        decimal.NewFromInt(50000),
		PaymentMethod: model.MethodCash,
		Description:   "Opening float",
	})

	require.NoError(t, err)
	assert.Equal(t, "50000", resp.CashBalance.String())
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, model.TxIncome, resp.Transactions[0].Type)
	assert.Equal(t, "Opening float", resp.Transactions[0].Description)

	// Balance equals the signed sum of surviving entries.
	assert.True(t, repo.box.CashBalance.Equal(repo.signedSum(model.MethodCash)))
}

func TestDepositRejectsInvalidInput(t *testing.T) {
	svc := NewCashboxService(newMemCashboxRepo())

	_, err := svc.Deposit(context.Background(), dto.DepositRequest{
		Amount:        decimal.NewFromInt(-10),
		PaymentMethod: model.MethodCash,
	})
	assert.ErrorContains(t, err, "greater than zero")

	_, err = svc.Deposit(context.Background(), dto.DepositRequest{
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: "crypto",
	})
	assert.ErrorContains(t, err, "paymentMethod")
}

func TestExpenseGuardedByBalance(t *testing.T) {
	repo := newMemCashboxRepo()
	svc := NewCashboxService(repo)

	_, err := svc.Deposit(context.Background(), dto.DepositRequest{
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: model.MethodCard,
	})
	require.NoError(t, err)

	// Over the balance: rejected, nothing changes.
	_, err = svc.Expense(context.Background(), dto.ExpenseRequest{
		Amount:        decimal.NewFromInt(1500),
		PaymentMethod: model.MethodCard,
	})
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeInsufficientFunds, apiErr.Code)
	assert.Equal(t, "1000", repo.box.CardBalance.String())
	assert.Len(t, repo.txs, 1)

	// Within the balance: succeeds.
	resp, err := svc.Expense(context.Background(), dto.ExpenseRequest{
		Amount:        decimal.NewFromInt(400),
		PaymentMethod: model.MethodCard,
	})
	require.NoError(t, err)
	assert.Equal(t, "600", resp.CardBalance.String())
	assert.True(t, repo.box.CardBalance.Equal(repo.signedSum(model.MethodCard)))
}

func TestMethodsAreIndependent(t *testing.T) {
	repo := newMemCashboxRepo()
	svc := NewCashboxService(repo)

	for method, amount := range map[string]int64{
		model.MethodCash: 100,
		model.MethodCard: 200,
		model.MethodBank: 300,
	} {
		_, err := svc.Deposit(context.Background(), dto.DepositRequest{
			Amount:        decimal.NewFromInt(amount),
			PaymentMethod: method,
		})
		require.NoError(t, err)
	}

	// A large cash balance never covers a card expense.
	_, err := svc.Expense(context.Background(), dto.ExpenseRequest{
		Amount:        decimal.NewFromInt(250),
		PaymentMethod: model.MethodCard,
	})
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeInsufficientFunds, apiErr.Code)

	assert.Equal(t, "100", repo.box.CashBalance.String())
	assert.Equal(t, "200", repo.box.CardBalance.String())
	assert.Equal(t, "300", repo.box.BankBalance.String())
}

func TestReverseTransactionRestoresBalance(t *testing.T) {
	repo := newMemCashboxRepo()
	svc := NewCashboxService(repo)

	resp, err := svc.Deposit(context.Background(), dto.DepositRequest{
		Amount:        decimal.NewFromInt(7000),
		PaymentMethod: model.MethodCash,
	})
	require.NoError(t, err)
	txID := resp.Transactions[0].ID

	after, err := svc.ReverseTransaction(context.Background(), txID)
	require.NoError(t, err)
	assert.True(t, after.CashBalance.IsZero())
	assert.Empty(t, after.Transactions)
	assert.True(t, repo.box.CashBalance.Equal(repo.signedSum(model.MethodCash)))
}

func TestReverseExpenseAddsBack(t *testing.T) {
	repo := newMemCashboxRepo()
	svc := NewCashboxService(repo)

	_, err := svc.Deposit(context.Background(), dto.DepositRequest{
		Amount:        decimal.NewFromInt(10000),
		PaymentMethod: model.MethodBank,
	})
	require.NoError(t, err)
	resp, err := svc.Expense(context.Background(), dto.ExpenseRequest{
		Amount:        decimal.NewFromInt(4000),
		PaymentMethod: model.MethodBank,
	})
	require.NoError(t, err)
	assert.Equal(t, "6000", resp.BankBalance.String())

	var expenseTx model.Transaction
	for _, tx := range resp.Transactions {
		if tx.Type == model.TxExpense {
			expenseTx = tx
		}
	}
	require.NotZero(t, expenseTx.ID)

	after, err := svc.ReverseTransaction(context.Background(), expenseTx.ID)
	require.NoError(t, err)
	assert.Equal(t, "10000", after.BankBalance.String())
	assert.Len(t, after.Transactions, 1)
}

// staleReadCashboxRepo serves a retained snapshot from FindTransaction, the
// way a request that read the entry just before a concurrent reversal
// committed would see it.
type staleReadCashboxRepo struct {
	*memCashboxRepo
	snapshot model.Transaction
}

func (r *staleReadCashboxRepo) FindTransaction(_ context.Context, _ uuid.UUID) (*model.Transaction, error) {
	t := r.snapshot
	return &t, nil
}

func TestReverseTransactionAppliesOnce(t *testing.T) {
	repo := newMemCashboxRepo()
	svc := NewCashboxService(repo)

	resp, err := svc.Deposit(context.Background(), dto.DepositRequest{
		Amount:        decimal.NewFromInt(7000),
		PaymentMethod: model.MethodCash,
	})
	require.NoError(t, err)
	entry := resp.Transactions[0]

	_, err = svc.ReverseTransaction(context.Background(), entry.ID)
	require.NoError(t, err)

	// A second reversal that read the entry before the first one committed
	// sees zero rows deleted and must not move the balance again.
	stale := &staleReadCashboxRepo{memCashboxRepo: repo, snapshot: entry}
	_, err = NewCashboxService(stale).ReverseTransaction(context.Background(), entry.ID)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeNotFound, apiErr.Code)

	assert.True(t, repo.box.CashBalance.IsZero())
	assert.Empty(t, repo.txs)
	assert.True(t, repo.box.CashBalance.Equal(repo.signedSum(model.MethodCash)))
}

func TestReverseUnknownTransaction(t *testing.T) {
	svc := NewCashboxService(newMemCashboxRepo())

	_, err := svc.ReverseTransaction(context.Background(), uuid.New())
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeNotFound, apiErr.Code)
}
