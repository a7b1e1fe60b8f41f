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

type handoverFixture struct {
	handovers *memHandoverRepo
	sellers   *memSellerRepo
	cashbox   *memCashboxRepo
	svc       HandoverService

	employee   *model.Seller
	supervisor *model.Seller
}

func newHandoverFixture(t *testing.T) *handoverFixture {
	t.Helper()
	f := &handoverFixture{
		handovers: newMemHandoverRepo(),
		sellers:   newMemSellerRepo(),
		cashbox:   newMemCashboxRepo(),
	}
	f.svc = NewHandoverService(f.handovers, f.sellers, f.cashbox)

	f.employee = &model.Seller{Firstname: "Emp", Login: "emp", Role: model.RoleSeller}
	f.supervisor = &model.Seller{Firstname: "Sup", Login: "sup", Role: model.RoleAdmin}
	require.NoError(t, f.sellers.Create(context.Background(), f.employee))
	require.NoError(t, f.sellers.Create(context.Background(), f.supervisor))

	f.cashbox.box.CashBalance = decimal.NewFromInt(10000)
	return f
}

func (f *handoverFixture) create(t *testing.T, amount int64) *model.Handover {
	t.Helper()
	h, err := f.svc.Create(context.Background(), f.employee.ID, dto.CreateHandoverRequest{
		Amount:        decimal.NewFromInt(amount),
		PaymentMethod: model.MethodCash,
		SupervisorID:  f.supervisor.ID.String(),
	})
	require.NoError(t, err)
	return h
}

func TestCreateHandoverStartsPending(t *testing.T) {
	f := newHandoverFixture(t)

	h := f.create(t, 5000)
	assert.Equal(t, model.HandoverPending, h.Status)
	assert.Nil(t, h.TransactionID)

	// Creating does not move money yet.
	assert.Equal(t, "10000", f.cashbox.box.CashBalance.String())
	assert.Empty(t, f.cashbox.txs)
}

func TestCreateHandoverSupervisorMustBeAdmin(t *testing.T) {
	f := newHandoverFixture(t)

	other := &model.Seller{Firstname: "Peer", Login: "peer", Role: model.RoleSeller}
	require.NoError(t, f.sellers.Create(context.Background(), other))

	_, err := f.svc.Create(context.Background(), f.employee.ID, dto.CreateHandoverRequest{
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: model.MethodCash,
		SupervisorID:  other.ID.String(),
	})
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeForbidden, apiErr.Code)
}

func TestCreateHandoverOverCashboxBalance(t *testing.T) {
	f := newHandoverFixture(t)

	_, err := f.svc.Create(context.Background(), f.employee.ID, dto.CreateHandoverRequest{
		Amount:        decimal.NewFromInt(99999),
		PaymentMethod: model.MethodCash,
		SupervisorID:  f.supervisor.ID.String(),
	})
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeInsufficientFunds, apiErr.Code)
}

func TestAcceptHandoverCompletes(t *testing.T) {
	f := newHandoverFixture(t)
	h := f.create(t, 5000)

	accepted, err := f.svc.Accept(context.Background(), f.supervisor.ID, h.ID)
	require.NoError(t, err)
	assert.Equal(t, model.HandoverCompleted, accepted.Status)
	require.NotNil(t, accepted.TransactionID)

	assert.Equal(t, "5000", f.cashbox.box.CashBalance.String())
	require.Len(t, f.cashbox.txs, 1)
	tx := f.cashbox.txs[0]
	assert.Equal(t, model.TxExpense, tx.Type)
	assert.Equal(t, "Received from employee", tx.Description)
	assert.Equal(t, *accepted.TransactionID, tx.ID)
	require.NotNil(t, tx.ReferenceID)
	assert.Equal(t, h.ID, *tx.ReferenceID)
}

func TestAcceptHandoverWrongActor(t *testing.T) {
	f := newHandoverFixture(t)
	h := f.create(t, 5000)

	_, err := f.svc.Accept(context.Background(), f.employee.ID, h.ID)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeForbidden, apiErr.Code)
}

func TestAcceptHandoverTwice(t *testing.T) {
	f := newHandoverFixture(t)
	h := f.create(t, 5000)

	_, err := f.svc.Accept(context.Background(), f.supervisor.ID, h.ID)
	require.NoError(t, err)

	_, err = f.svc.Accept(context.Background(), f.supervisor.ID, h.ID)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeConflict, apiErr.Code)

	// The second attempt moved no money.
	assert.Equal(t, "5000", f.cashbox.box.CashBalance.String())
	assert.Len(t, f.cashbox.txs, 1)
}

func TestAcceptHandoverBalanceDrained(t *testing.T) {
	f := newHandoverFixture(t)
	h := f.create(t, 8000)

	// The balance dropped between creation and acceptance.
	f.cashbox.box.CashBalance = decimal.NewFromInt(100)

	_, err := f.svc.Accept(context.Background(), f.supervisor.ID, h.ID)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeInsufficientFunds, apiErr.Code)

	stored, findErr := f.handovers.FindByID(context.Background(), h.ID)
	require.NoError(t, findErr)
	assert.Equal(t, model.HandoverPending, stored.Status)
}

// staleReadHandoverRepo serves a retained pending snapshot from FindByID,
// the way a second accept that read the row before the first one committed
// would see it.
type staleReadHandoverRepo struct {
	*memHandoverRepo
	snapshot model.Handover
}

func (r *staleReadHandoverRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.Handover, error) {
	h := r.snapshot
	return &h, nil
}

func TestAcceptHandoverConcurrentAccept(t *testing.T) {
	f := newHandoverFixture(t)
	h := f.create(t, 5000)

	accepted, err := f.svc.Accept(context.Background(), f.supervisor.ID, h.ID)
	require.NoError(t, err)
	require.Equal(t, model.HandoverCompleted, accepted.Status)

	// The losing accept passed the pending check on its stale read; the
	// guarded status transition must stop it before any money moves.
	stale := &staleReadHandoverRepo{memHandoverRepo: f.handovers, snapshot: *h}
	svc := NewHandoverService(stale, f.sellers, f.cashbox)
	_, err = svc.Accept(context.Background(), f.supervisor.ID, h.ID)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeConflict, apiErr.Code)

	// Withdrawn exactly once, one ledger entry.
	assert.Equal(t, "5000", f.cashbox.box.CashBalance.String())
	assert.Len(t, f.cashbox.txs, 1)
}

func TestCancelHandoverConcurrentAccept(t *testing.T) {
	f := newHandoverFixture(t)
	h := f.create(t, 5000)

	_, err := f.svc.Accept(context.Background(), f.supervisor.ID, h.ID)
	require.NoError(t, err)

	// A cancel holding a stale pending snapshot loses the transition.
	stale := &staleReadHandoverRepo{memHandoverRepo: f.handovers, snapshot: *h}
	svc := NewHandoverService(stale, f.sellers, f.cashbox)
	_, err = svc.Cancel(context.Background(), f.employee.ID, h.ID)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeConflict, apiErr.Code)

	stored, findErr := f.handovers.FindByID(context.Background(), h.ID)
	require.NoError(t, findErr)
	assert.Equal(t, model.HandoverCompleted, stored.Status)
}

func TestCancelHandover(t *testing.T) {
	f := newHandoverFixture(t)
	h := f.create(t, 5000)

	cancelled, err := f.svc.Cancel(context.Background(), f.employee.ID, h.ID)
	require.NoError(t, err)
	assert.Equal(t, model.HandoverCancelled, cancelled.Status)

	// A cancelled handover cannot be accepted.
	_, err = f.svc.Accept(context.Background(), f.supervisor.ID, h.ID)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeConflict, apiErr.Code)
}

func TestCancelHandoverOutsider(t *testing.T) {
	f := newHandoverFixture(t)
	h := f.create(t, 5000)

	_, err := f.svc.Cancel(context.Background(), uuid.New(), h.ID)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeForbidden, apiErr.Code)
}

func TestSupervisorsListsAdminsOnly(t *testing.T) {
	f := newHandoverFixture(t)

	sups, err := f.svc.Supervisors(context.Background())
	require.NoError(t, err)
	require.Len(t, sups, 1)
	assert.Equal(t, f.supervisor.ID.String(), sups[0].ID)
}
