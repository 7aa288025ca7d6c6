package paystack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"mopay/apperrors"
	"mopay/config"

	"github.com/go-resty/resty/v2"
)

// Client talks to the Paystack REST API. Calls are request-scoped; no retries
// are performed here, a failed call surfaces to the caller.
type Client struct {
	http *resty.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.PaystackBaseURL).
			SetAuthToken(cfg.PaystackSecretKey).
			SetHeader("Content-Type", "application/json"),
	}
}

// apiEnvelope is the fixed Paystack response wrapper.
type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	return c.decode(resp, err, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(path)
	return c.decode(resp, err, out)
}

func (c *Client) decode(resp *resty.Response, err error, out any) error {
	if err != nil {
		return apperrors.Internal(fmt.Sprintf("paystack request failed: %v", err))
	}

	var env apiEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return apperrors.Internal("paystack returned an unexpected response")
	}
	if resp.StatusCode() >= 400 || !env.Status {
		return apperrors.Internal(fmt.Sprintf("paystack: %s", env.Message))
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return apperrors.Internal("paystack returned an unexpected response")
		}
	}
	return nil
}

func (c *Client) InitializePayment(ctx context.Context, args InitializePaymentArgs) (*InitializePaymentData, error) {
	data := new(InitializePaymentData)
	if err := c.post(ctx, "/transaction/initialize", args, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) VerifyPayment(ctx context.Context, reference string) (*VerifyPaymentData, error) {
	data := new(VerifyPaymentData)
	if err := c.get(ctx, "/transaction/verify/"+url.PathEscape(reference), data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) CreateCustomer(ctx context.Context, args CreateCustomerArgs) (*CustomerData, error) {
	data := new(CustomerData)
	if err := c.post(ctx, "/customer", args, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) CreateTransferRecipient(ctx context.Context, args CreateTransferRecipientArgs) (*TransferRecipientData, error) {
	data := new(TransferRecipientData)
	if err := c.post(ctx, "/transferrecipient", args, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) GetTransferRecipient(ctx context.Context, recipientCode string) (*TransferRecipientData, error) {
	data := new(TransferRecipientData)
	if err := c.get(ctx, "/transferrecipient/"+url.PathEscape(recipientCode), data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) InitiateTransfer(ctx context.Context, args InitiateTransferArgs) (*InitiateTransferData, error) {
	data := new(InitiateTransferData)
	if err := c.post(ctx, "/transfer", args, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) FinalizeTransfer(ctx context.Context, args FinalizeTransferArgs) (*FinalizeTransferData, error) {
	data := new(FinalizeTransferData)
	if err := c.post(ctx, "/transfer/finalize_transfer", args, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) VerifyTransfer(ctx context.Context, reference string) (*VerifyTransferData, error) {
	data := new(VerifyTransferData)
	if err := c.get(ctx, "/transfer/verify/"+url.PathEscape(reference), data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) ListBanks(ctx context.Context, currency string) ([]Bank, error) {
	var banks []Bank
	if err := c.get(ctx, "/bank?currency="+url.QueryEscape(currency), &banks); err != nil {
		return nil, err
	}
	return banks, nil
}

func (c *Client) ResolveAccountNumber(ctx context.Context, accountNumber, bankCode string) (*ResolveAccountData, error) {
	data := new(ResolveAccountData)
	path := fmt.Sprintf("/bank/resolve?account_number=%s&bank_code=%s",
		url.QueryEscape(accountNumber), url.QueryEscape(bankCode))
	if err := c.get(ctx, path, data); err != nil {
		return nil, err
	}
	return data, nil
}
