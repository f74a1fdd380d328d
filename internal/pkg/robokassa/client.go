package robokassa

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const merchantURL = "https://auth.robokassa.ru/Merchant/Index.aspx"

// Config holds RoboKassa configuration
type Config struct {
	MerchantLogin string // Merchant login (MrchLogin)
	Password1     string // Password #1 for payment initialization
	Password2     string // Password #2 for webhook verification (ResultURL)
	TestMode      bool
	HashAlgo      HashAlgorithm // MD5 or SHA256 (default SHA256)
	SuccessURL    string        // overrides the dashboard SuccessURL when set
	FailURL       string        // overrides the dashboard FailURL when set
}

// Client builds payment URLs and verifies callbacks for the RoboKassa gateway.
type Client struct {
	config Config
}

// PaymentRequest describes a booking payment to initialize.
type PaymentRequest struct {
	Amount      float64
	InvID       int64 // unique invoice number, one per booking payment
	Description string
	Email       string            // optional, prefills the payment form
	Shp         map[string]string // custom params echoed back in callbacks
}

// PaymentLink is the redirect target for the customer.
type PaymentLink struct {
	PaymentURL string
	InvID      int64
}

// NewClient creates new RoboKassa client
func NewClient(cfg Config) *Client {
	return &Client{config: cfg}
}

// CreatePayment generates a signed payment URL. RoboKassa has no
// server-to-server init call; the customer is redirected with a signature.
func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentLink, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("validation error: amount must be > 0")
	}
	if req.InvID <= 0 {
		return nil, fmt.Errorf("validation error: invoice ID must be > 0")
	}
	if strings.TrimSpace(c.config.MerchantLogin) == "" {
		return nil, fmt.Errorf("robokassa config error: merchant_login is empty")
	}
	if strings.TrimSpace(c.config.Password1) == "" {
		return nil, fmt.Errorf("robokassa config error: password1 is empty")
	}

	outSum := fmt.Sprintf("%.2f", req.Amount)

	algo := c.config.HashAlgo
	if algo == "" {
		algo = HashSHA256
	}

	// Prefix custom keys with Shp_ so they participate in the signature.
	shp := make(map[string]string, len(req.Shp))
	for k, v := range req.Shp {
		key := k
		if !strings.HasPrefix(strings.ToLower(k), "shp_") {
			key = "Shp_" + k
		}
		shp[key] = v
	}

	base := BuildStartSignatureBase(
		c.config.MerchantLogin,
		outSum,
		strconv.FormatInt(req.InvID, 10),
		c.config.Password1,
		shp,
	)
	signature, err := Sign(base, algo)
	if err != nil {
		return nil, fmt.Errorf("robokassa: failed to sign payment request: %w", err)
	}

	params := url.Values{}
	params.Set("MerchantLogin", c.config.MerchantLogin)
	params.Set("OutSum", outSum)
	params.Set("InvId", strconv.FormatInt(req.InvID, 10))
	params.Set("Description", req.Description)
	params.Set("SignatureValue", signature)
	if req.Email != "" {
		params.Set("Email", req.Email)
	}
	for k, v := range shp {
		params.Set(k, v)
	}
	if c.config.TestMode {
		params.Set("IsTest", "1")
	}
	if c.config.SuccessURL != "" {
		params.Set("SuccessUrl2", c.config.SuccessURL)
		params.Set("SuccessUrl2Method", "GET")
	}
	if c.config.FailURL != "" {
		params.Set("FailUrl2", c.config.FailURL)
		params.Set("FailUrl2Method", "GET")
	}

	return &PaymentLink{
		PaymentURL: merchantURL + "?" + params.Encode(),
		InvID:      req.InvID,
	}, nil
}
