package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourorg/matchup-bff/internal/model"
)

func TestPreparePayment_PrimaryPath(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"success":true,"code":0,"message":"","data":{"orderId":"ORD1","amount":150000}}`))
	})

	order, err := client.PreparePayment(context.Background(), "token", 42)
	require.NoError(t, err)
	assert.Equal(t, "ORD1", order.OrderID)
	assert.Equal(t, int64(150000), order.Amount)
	assert.Equal(t, []string{"/api/payments/prepare"}, paths)
}

func TestPreparePayment_Bare404FallsBackOnce(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/payments/prepare" {
			// A route miss: plain 404 with no envelope message.
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"success":true,"code":0,"message":"","data":{"orderId":"ORD2","amount":90000}}`))
	})

	order, err := client.PreparePayment(context.Background(), "token", 42)
	require.NoError(t, err)
	assert.Equal(t, "ORD2", order.OrderID)
	assert.Equal(t, []string{"/api/payments/prepare", "/api/v1/payments/prepare"}, paths)
}

func TestPreparePayment_404WithMessageDoesNotFallBack(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"code":404,"message":"결제 대상을 찾을 수 없습니다."}`))
	})

	_, err := client.PreparePayment(context.Background(), "token", 42)
	require.Error(t, err)
	assert.Equal(t, 1, calls, "a 404 carrying a server message is a real application error")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "결제 대상을 찾을 수 없습니다.", apiErr.Message)
}

func TestPreparePayment_BothPathsMissing(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.NotFound(w, r)
	})

	_, err := client.PreparePayment(context.Background(), "token", 42)
	require.ErrorIs(t, err, ErrNoPaymentEndpoint)
	assert.Equal(t, 2, calls, "at most one alternate path is tried")
	assert.Contains(t, err.Error(), "/api/payments/prepare")
	assert.Contains(t, err.Error(), "/api/v1/payments/prepare")
}

func TestPreparePayment_Non404DoesNotFallBack(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"code":400,"message":"잘못된 요청입니다."}`))
	})

	_, err := client.PreparePayment(context.Background(), "token", 42)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestConfirmPayment_SendsReturnValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/confirm", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"success":true,"code":0,"message":"","data":null}`))
	}))
	defer server.Close()

	client := New(server.URL, 2*time.Second, zap.NewNop())
	err := client.ConfirmPayment(context.Background(), "token", model.PaymentConfirm{
		PaymentKey: "pk_test",
		OrderID:    "ORD1",
		Amount:     150000,
	})
	require.NoError(t, err)
}

func TestPaymentClientKey(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/client-key", r.URL.Path)
		w.Write([]byte(`{"success":true,"code":0,"message":"","data":{"clientKey":"ck_live_x"}}`))
	})

	key, err := client.PaymentClientKey(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "ck_live_x", key)
}
