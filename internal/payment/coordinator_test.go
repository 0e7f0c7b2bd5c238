package payment

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/model"
)

type fakeGatewayAPI struct {
	prepareCalls   int
	clientKeyCalls int
	confirmCalls   int

	order        model.PaymentOrder
	prepareErr   error
	clientKey    string
	clientKeyErr error
	confirmDelay time.Duration
	confirmErr   error
	lastConfirm  model.PaymentConfirm
}

func (f *fakeGatewayAPI) PreparePayment(ctx context.Context, token string, applicationID int64) (model.PaymentOrder, error) {
	f.prepareCalls++
	return f.order, f.prepareErr
}

func (f *fakeGatewayAPI) PaymentClientKey(ctx context.Context, token string) (string, error) {
	f.clientKeyCalls++
	return f.clientKey, f.clientKeyErr
}

func (f *fakeGatewayAPI) ConfirmPayment(ctx context.Context, token string, confirm model.PaymentConfirm) error {
	f.confirmCalls++
	f.lastConfirm = confirm
	if f.confirmDelay > 0 {
		time.Sleep(f.confirmDelay)
	}
	return f.confirmErr
}

func testConfig() Config {
	return Config{
		SuccessURL:     "https://app.example/payments/success",
		FailURL:        "https://app.example/payments/fail",
		ConfirmTimeout: 200 * time.Millisecond,
		SuccessDelay:   20 * time.Millisecond,
	}
}

func TestStart_RequiresApplicationID(t *testing.T) {
	api := &fakeGatewayAPI{}
	c := New(api, testConfig(), nil, zap.NewNop())

	_, err := c.Start(context.Background(), "token", 0)

	assert.ErrorIs(t, err, ErrMissingApplication)
	assert.Equal(t, StateFailed, c.State())
	assert.Equal(t, 0, api.prepareCalls, "precondition failures must not reach the network")
	assert.Equal(t, 0, api.clientKeyCalls)
}

func TestStart_ProducesHandoffParams(t *testing.T) {
	api := &fakeGatewayAPI{
		order:     model.PaymentOrder{OrderID: "ORD1", Amount: 150000},
		clientKey: "ck_live_x",
	}
	c := New(api, testConfig(), nil, zap.NewNop())

	params, err := c.Start(context.Background(), "token", 42)
	require.NoError(t, err)

	assert.Equal(t, StateHandoff, c.State())
	assert.Equal(t, "ck_live_x", params.ClientKey)
	assert.Equal(t, "KRW", params.Currency)
	assert.Equal(t, int64(150000), params.Amount, "amount is the server-computed value, untouched")
	assert.Equal(t, "ORD1", params.OrderID)
	assert.Equal(t, "프로젝트 파트너 결제", params.OrderName, "missing order name falls back to the default")
	assert.Equal(t, "https://app.example/payments/success", params.SuccessURL)

	session := c.Session()
	assert.Equal(t, int64(42), session.ApplicationID)
	assert.Equal(t, "ORD1", session.OrderID)
}

func TestStart_ClientKeyFailureFails(t *testing.T) {
	api := &fakeGatewayAPI{
		order:        model.PaymentOrder{OrderID: "ORD1", Amount: 1000},
		clientKeyErr: errors.New("key service down"),
	}
	c := New(api, testConfig(), nil, zap.NewNop())

	_, err := c.Start(context.Background(), "token", 42)
	assert.Error(t, err)
	assert.Equal(t, StateFailed, c.State())
}

func TestParseReturnParams(t *testing.T) {
	confirm, ok := ParseReturnParams(url.Values{
		"paymentKey": {"pk_test"},
		"orderId":    {"ORD1"},
		"amount":     {"150000"},
	})
	require.True(t, ok)
	assert.Equal(t, "pk_test", confirm.PaymentKey)
	assert.Equal(t, int64(150000), confirm.Amount)

	for name, query := range map[string]url.Values{
		"missing paymentKey": {"orderId": {"ORD1"}, "amount": {"150000"}},
		"missing orderId":    {"paymentKey": {"pk"}, "amount": {"150000"}},
		"zero amount":        {"paymentKey": {"pk"}, "orderId": {"ORD1"}, "amount": {"0"}},
		"bad amount":         {"paymentKey": {"pk"}, "orderId": {"ORD1"}, "amount": {"abc"}},
	} {
		_, ok := ParseReturnParams(query)
		assert.False(t, ok, name)
	}
}

func TestConfirmReturn_MissingParamsFailImmediately(t *testing.T) {
	api := &fakeGatewayAPI{}
	c := New(api, testConfig(), nil, zap.NewNop())

	state, err := c.ConfirmReturn(context.Background(), "token", model.PaymentConfirm{}, false)

	assert.Equal(t, StateFailed, state)
	assert.ErrorIs(t, err, ErrReturnParamsMissing)
	assert.Equal(t, 0, api.confirmCalls)
}

func TestConfirmReturn_SuccessNavigatesAfterDelay(t *testing.T) {
	api := &fakeGatewayAPI{}
	navigated := make(chan struct{})
	c := New(api, testConfig(), func() { close(navigated) }, zap.NewNop())

	confirm := model.PaymentConfirm{PaymentKey: "pk", OrderID: "ORD1", Amount: 150000}
	state, err := c.ConfirmReturn(context.Background(), "token", confirm, true)

	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, state)
	assert.Equal(t, confirm, api.lastConfirm)

	select {
	case <-navigated:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("home navigation did not fire after the success delay")
	}
}

func TestConfirmReturn_FiresAtMostOnce(t *testing.T) {
	api := &fakeGatewayAPI{}
	c := New(api, testConfig(), nil, zap.NewNop())

	confirm := model.PaymentConfirm{PaymentKey: "pk", OrderID: "ORD1", Amount: 150000}
	_, err := c.ConfirmReturn(context.Background(), "token", confirm, true)
	require.NoError(t, err)

	// A re-render of the return screen must not confirm twice.
	state, err := c.ConfirmReturn(context.Background(), "token", confirm, true)
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, state)
	assert.Equal(t, 1, api.confirmCalls)
}

func TestConfirmReturn_TimeoutBeatsLateSuccess(t *testing.T) {
	cfg := testConfig()
	cfg.ConfirmTimeout = 30 * time.Millisecond

	api := &fakeGatewayAPI{confirmDelay: 120 * time.Millisecond}
	navigated := make(chan struct{})
	c := New(api, cfg, func() { close(navigated) }, zap.NewNop())

	confirm := model.PaymentConfirm{PaymentKey: "pk", OrderID: "ORD1", Amount: 150000}
	state, err := c.ConfirmReturn(context.Background(), "token", confirm, true)

	// The timeout fired first; the late-resolving success must not
	// override the failure or trigger navigation.
	assert.Equal(t, StateFailed, state)
	assert.ErrorIs(t, err, ErrConfirmTimeout)
	assert.Equal(t, StateFailed, c.State())

	select {
	case <-navigated:
		t.Fatal("navigation fired despite the timeout")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestConfirmReturn_ConfirmErrorFails(t *testing.T) {
	api := &fakeGatewayAPI{confirmErr: errors.New("gateway rejected")}
	c := New(api, testConfig(), nil, zap.NewNop())

	confirm := model.PaymentConfirm{PaymentKey: "pk", OrderID: "ORD1", Amount: 150000}
	state, err := c.ConfirmReturn(context.Background(), "token", confirm, true)

	assert.Equal(t, StateFailed, state)
	assert.Error(t, err)
}

func TestClose_CancelsPendingNavigation(t *testing.T) {
	cfg := testConfig()
	cfg.SuccessDelay = 60 * time.Millisecond

	api := &fakeGatewayAPI{}
	navigated := make(chan struct{})
	c := New(api, cfg, func() { close(navigated) }, zap.NewNop())

	confirm := model.PaymentConfirm{PaymentKey: "pk", OrderID: "ORD1", Amount: 150000}
	_, err := c.ConfirmReturn(context.Background(), "token", confirm, true)
	require.NoError(t, err)

	c.Close()

	select {
	case <-navigated:
		t.Fatal("navigation fired after teardown")
	case <-time.After(150 * time.Millisecond):
	}
}
