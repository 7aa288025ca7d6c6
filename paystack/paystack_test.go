package paystack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mopay/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.Config{
		PaystackBaseURL:   server.URL,
		PaystackSecretKey: "sk_test_key",
	})
}

func TestVerifyTransferDecodesRecipientMetadata(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transfer/verify/ref-123", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Transfer retrieved",
			"data": {
				"amount": 10000,
				"currency": "NGN",
				"status": "success",
				"transfer_code": "TRF_abc",
				"recipient": {"metadata": {"walletId": "42"}}
			}
		}`))
	})

	data, err := client.VerifyTransfer(context.Background(), "ref-123")
	require.NoError(t, err)

	assert.Equal(t, int64(10000), data.Amount)
	assert.Equal(t, "NGN", data.Currency)
	assert.Equal(t, "success", data.Status)
	assert.Equal(t, "TRF_abc", data.TransferCode)
	assert.Equal(t, "42", data.Recipient.Metadata.WalletID)
}

func TestInitializePaymentSendsReference(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc",
				"access_code": "AC_abc",
				"reference": "ref-456"
			}
		}`))
	})

	data, err := client.InitializePayment(context.Background(), InitializePaymentArgs{
		Email:     "ada@example.com",
		Amount:    10000,
		Reference: "ref-456",
	})
	require.NoError(t, err)

	assert.Equal(t, "AC_abc", data.AccessCode)
	assert.Equal(t, "ref-456", data.Reference)
}

func TestGatewayErrorSurfacesMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status": false, "message": "Transfer not found"}`))
	})

	_, err := client.VerifyTransfer(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transfer not found")
}

func TestListBanksDecodesArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bank", r.URL.Path)
		assert.Equal(t, "NGN", r.URL.Query().Get("currency"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Banks retrieved",
			"data": [
				{"name": "Guaranty Trust Bank", "code": "058", "currency": "NGN"},
				{"name": "Zenith Bank", "code": "057", "currency": "NGN"}
			]
		}`))
	})

	banks, err := client.ListBanks(context.Background(), "NGN")
	require.NoError(t, err)
	require.Len(t, banks, 2)
	assert.Equal(t, "058", banks[0].Code)
}
