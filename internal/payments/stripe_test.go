package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/levankh14/stripe/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *StripeClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewStripeClient("pk_test_123", zap.NewNop().Sugar())
	client.SetBaseURL(srv.URL)
	return client
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestIntentIDFromSecret(t *testing.T) {
	id, err := intentIDFromSecret("pi_42_secret_abc")
	require.NoError(t, err)
	assert.Equal(t, "pi_42", id)

	_, err = intentIDFromSecret("garbage")
	require.Error(t, err)
}

func TestConfirmCardPayment(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payment_intents/pi_42/confirm", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "pk_test_123", r.FormValue("key"))
		assert.Equal(t, "pi_42_secret_abc", r.FormValue("client_secret"))
		assert.Equal(t, "tok_visa", r.FormValue("payment_method_data[card][token]"))
		assert.Equal(t, "Jenny Rosen", r.FormValue("payment_method_data[billing_details][name]"))

		writeJSON(w, http.StatusOK, map[string]any{
			"id":            "pi_42",
			"client_secret": "pi_42_secret_abc",
			"amount":        1050,
			"currency":      "usd",
			"status":        "succeeded",
		})
	}))

	res, err := client.ConfirmCardPayment(context.Background(), "pi_42_secret_abc", &ConfirmParams{
		CardToken:    "tok_visa",
		BillingName:  "Jenny Rosen",
		BillingEmail: "jenny@example.com",
	})

	require.NoError(t, err)
	require.NotNil(t, res.Intent)
	assert.Nil(t, res.Err)
	assert.Equal(t, domain.StatusSucceeded, res.Intent.Status)
	assert.Equal(t, int64(1050), res.Intent.Amount)
}

func TestConfirmCardPayment_Declined(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusPaymentRequired, map[string]any{
			"error": map[string]any{"message": "Your card was declined."},
		})
	}))

	res, err := client.ConfirmCardPayment(context.Background(), "pi_42_secret_abc", nil)

	// A decline is a result, not a transport error.
	require.NoError(t, err)
	require.NotNil(t, res.Err)
	assert.Equal(t, "Your card was declined.", res.Err.Message)
	assert.Nil(t, res.Intent)
}

func TestCreateSource(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sources", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ideal", r.FormValue("type"))
		assert.Equal(t, "1050", r.FormValue("amount"))
		assert.Equal(t, "pi_42", r.FormValue("metadata[paymentIntent]"))
		assert.Equal(t, "http://localhost:8000/checkout", r.FormValue("redirect[return_url]"))

		writeJSON(w, http.StatusOK, map[string]any{
			"id":            "src_1",
			"client_secret": "src_1_secret_x",
			"type":          "ideal",
			"flow":          "redirect",
			"redirect":      map[string]any{"url": "https://bank.example/authorize"},
			"metadata":      map[string]any{"paymentIntent": "pi_42"},
		})
	}))

	src, err := client.CreateSource(context.Background(), &SourceRequest{
		Type:      "ideal",
		Amount:    1050,
		Currency:  "eur",
		Owner:     domain.SourceOwner{Name: "Jenny Rosen", Email: "jenny@example.com"},
		ReturnURL: "http://localhost:8000/checkout",
		Metadata:  domain.SourceMetadata{PaymentIntentID: "pi_42"},
	})

	require.NoError(t, err)
	assert.Equal(t, "src_1", src.ID)
	assert.Equal(t, domain.FlowRedirect, src.Flow)
	assert.Equal(t, "https://bank.example/authorize", src.RedirectURL)
	assert.Equal(t, "pi_42", src.Metadata.PaymentIntentID)
}

func TestRetrieveSource(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sources/src_1", r.URL.Path)
		assert.Equal(t, "sec_1", r.URL.Query().Get("client_secret"))
		assert.Equal(t, "pk_test_123", r.URL.Query().Get("key"))

		writeJSON(w, http.StatusOK, map[string]any{
			"id":       "src_1",
			"type":     "giropay",
			"flow":     "redirect",
			"metadata": map[string]any{"paymentIntent": "pi_777"},
		})
	}))

	src, err := client.RetrieveSource(context.Background(), "src_1", "sec_1")

	require.NoError(t, err)
	assert.Equal(t, "pi_777", src.Metadata.PaymentIntentID)
	assert.Equal(t, domain.FlowRedirect, src.Flow)
}
