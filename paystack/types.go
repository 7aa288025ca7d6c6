package paystack

// Metadata attached to payment initialization; echoed back on verify.
type PaymentMetadata struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	WalletID string `json:"walletId,omitempty"`
}

type InitializePaymentArgs struct {
	Email       string          `json:"email"`
	Amount      int64           `json:"amount"` // minor units
	CallbackURL string          `json:"callback_url,omitempty"`
	Reference   string          `json:"reference"`
	Metadata    PaymentMetadata `json:"metadata"`
}

type InitializePaymentData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyPaymentData struct {
	Amount    int64           `json:"amount"`
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Metadata  PaymentMetadata `json:"metadata"`
}

type CreateCustomerArgs struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type CustomerData struct {
	CustomerCode string `json:"customer_code"`
}

// RecipientMetadata carries the internal wallet id through the gateway so a
// transfer confirmation can locate the wallet to credit.
type RecipientMetadata struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	WalletID string `json:"walletId"`
}

type CreateTransferRecipientArgs struct {
	Type          string            `json:"type"`
	Name          string            `json:"name"`
	AccountNumber string            `json:"account_number"`
	BankCode      string            `json:"bank_code"`
	Currency      string            `json:"currency"`
	Description   string            `json:"description,omitempty"`
	Metadata      RecipientMetadata `json:"metadata"`
}

type TransferRecipientData struct {
	RecipientCode string            `json:"recipient_code"`
	Metadata      RecipientMetadata `json:"metadata"`
}

type InitiateTransferArgs struct {
	Source    string `json:"source"`
	Reason    string `json:"reason,omitempty"`
	Amount    int64  `json:"amount"` // minor units
	Recipient string `json:"recipient"`
	Reference string `json:"reference"`
}

type InitiateTransferData struct {
	TransferCode string `json:"transfer_code"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type FinalizeTransferArgs struct {
	TransferCode string `json:"transfer_code"`
	OTP          string `json:"otp"`
}

type FinalizeTransferData struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type TransferRecipientDetail struct {
	Metadata RecipientMetadata `json:"metadata"`
}

type VerifyTransferData struct {
	Amount       int64                   `json:"amount"`
	Currency     string                  `json:"currency"`
	Status       string                  `json:"status"`
	TransferCode string                  `json:"transfer_code"`
	Recipient    TransferRecipientDetail `json:"recipient"`
}

type Bank struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Currency string `json:"currency"`
}

type ResolveAccountData struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}
