package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"
)

func newOrderFixture(t *testing.T) (*fakeStore, OrderService) {
	t.Helper()
	store := newFakeStore()
	uow := &fakeUnitOfWork{store: store}
	return store, NewOrderService(newFakeRegistry(store), uow)
}

func seedOrder(t *testing.T, store *fakeStore, status models.OrderStatus) *models.ServiceOrder {
	t.Helper()
	order := &models.ServiceOrder{
		OrderNumber:   "OS-test",
		CustomerID:    1,
		DeviceID:      1,
		Status:        status,
		ReceivedAt:    time.Now().Add(-48 * time.Hour),
		ReportedFault: "no enciende",
	}
	require.NoError(t, (&fakeOrderRepo{store}).Create(order))
	return order
}

func strPtr(s string) *string { return &s }

func TestTransitionToDoneRequiresTechnicalReport(t *testing.T) {
	store, svc := newOrderFixture(t)
	order := seedOrder(t, store, models.StatusInRepair)

	cost := decimal.NewFromInt(150)
	_, err := svc.Transition(order.ID, TransitionInput{
		Status:    models.StatusDone,
		LaborCost: &cost,
	})
	require.Error(t, err)

	var verrs *apperrors.ValidationError
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.Fields, "technical_report")

	// The rejected update must not leak any of its field changes.
	stored, _ := (&fakeOrderRepo{store}).GetByID(order.ID)
	assert.Equal(t, models.StatusInRepair, stored.Status)
	assert.True(t, stored.LaborCost.IsZero())
}

func TestTransitionToDoneWithReportSucceeds(t *testing.T) {
	store, svc := newOrderFixture(t)
	order := seedOrder(t, store, models.StatusInRepair)

	updated, err := svc.Transition(order.ID, TransitionInput{
		Status:          models.StatusDone,
		TechnicalReport: strPtr("se reemplazo la placa de carga"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, updated.Status)
	assert.Equal(t, "se reemplazo la placa de carga", updated.TechnicalReport)
}

func TestTransitionNeverReentersReceived(t *testing.T) {
	store, svc := newOrderFixture(t)
	order := seedOrder(t, store, models.StatusQuoted)

	_, err := svc.Transition(order.ID, TransitionInput{Status: models.StatusReceived})
	var rule *apperrors.BusinessRuleError
	require.True(t, errors.As(err, &rule))
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	store, svc := newOrderFixture(t)
	order := seedOrder(t, store, models.StatusQuoted)

	_, err := svc.Transition(order.ID, TransitionInput{Status: "LOST"})
	var verrs *apperrors.ValidationError
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.Fields, "status")
}

func TestDeliveredOrderAcceptsNoFurtherUpdates(t *testing.T) {
	store, svc := newOrderFixture(t)
	order := seedOrder(t, store, models.StatusDelivered)

	_, err := svc.Transition(order.ID, TransitionInput{Status: models.StatusInRepair})
	var rule *apperrors.BusinessRuleError
	require.True(t, errors.As(err, &rule))
}

func TestCloseFromReceivedFailsAndLeavesOrderUntouched(t *testing.T) {
	store, svc := newOrderFixture(t)
	order := seedOrder(t, store, models.StatusReceived)

	_, err := svc.Close(order.ID)
	var rule *apperrors.BusinessRuleError
	require.True(t, errors.As(err, &rule))
	assert.Equal(t, "order not ready for delivery", rule.Reason)

	stored, _ := (&fakeOrderRepo{store}).GetByID(order.ID)
	assert.Equal(t, models.StatusReceived, stored.Status)
	assert.Nil(t, stored.DeliveredAt)
}

func TestCloseFromDoneDeliversAndStampsTime(t *testing.T) {
	store, svc := newOrderFixture(t)
	order := seedOrder(t, store, models.StatusDone)

	closed, err := svc.Close(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, closed.Status)
	require.NotNil(t, closed.DeliveredAt)
	assert.False(t, closed.DeliveredAt.Before(closed.ReceivedAt))
}

func TestCloseFromUnrepairableDelivers(t *testing.T) {
	store, svc := newOrderFixture(t)
	order := seedOrder(t, store, models.StatusUnrepairable)

	closed, err := svc.Close(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, closed.Status)
}

func TestTransitionToDeliveredUsesTheCloseGuard(t *testing.T) {
	store, svc := newOrderFixture(t)
	order := seedOrder(t, store, models.StatusInRepair)

	_, err := svc.Transition(order.ID, TransitionInput{Status: models.StatusDelivered})
	var rule *apperrors.BusinessRuleError
	require.True(t, errors.As(err, &rule))

	done := seedOrder(t, store, models.StatusDone)
	delivered, err := svc.Transition(done.ID, TransitionInput{Status: models.StatusDelivered})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)
}

func TestListPartitionsOrders(t *testing.T) {
	store, svc := newOrderFixture(t)
	seedOrder(t, store, models.StatusReceived)
	seedOrder(t, store, models.StatusInRepair)
	seedOrder(t, store, models.StatusDone)
	seedOrder(t, store, models.StatusUnrepairable)
	seedOrder(t, store, models.StatusDelivered)

	shop, err := svc.List(FilterShop)
	require.NoError(t, err)
	assert.Len(t, shop, 2)

	finished, err := svc.List(FilterFinished)
	require.NoError(t, err)
	assert.Len(t, finished, 2)

	delivered, err := svc.List(FilterDelivered)
	require.NoError(t, err)
	assert.Len(t, delivered, 1)

	// Unknown filters fall back to the in-shop view.
	fallback, err := svc.List("whatever")
	require.NoError(t, err)
	assert.Len(t, fallback, 2)
}

func TestTransitionUpdatesCostsAlongsideStatus(t *testing.T) {
	store, svc := newOrderFixture(t)
	order := seedOrder(t, store, models.StatusQuoted)

	cost := decimal.RequireFromString("150.50")
	balance := decimal.RequireFromString("220.00")
	updated, err := svc.Transition(order.ID, TransitionInput{
		Status:       models.StatusAwaitingParts,
		LaborCost:    &cost,
		FinalBalance: &balance,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAwaitingParts, updated.Status)
	assert.True(t, updated.LaborCost.Equal(cost))
	assert.True(t, updated.FinalBalance.Equal(balance))
}
