package vipps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	domain "github.com/kristins-brudesalong/salon-scheduler/internal/domain/appointment"
)

// Client is a thin wrapper over the Vipps Checkout v3 API. There is no
// official Go SDK, so the HTTP surface is implemented directly.
type Client struct {
	baseURL         string
	clientID        string
	clientSecret    string
	msn             string
	subscriptionKey string

	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

type Options struct {
	BaseURL         string
	ClientID        string
	ClientSecret    string
	MSN             string
	SubscriptionKey string

	// HTTPClient overrides the default client, mostly for tests.
	HTTPClient *http.Client
}

func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:         opts.BaseURL,
		clientID:        opts.ClientID,
		clientSecret:    opts.ClientSecret,
		msn:             opts.MSN,
		subscriptionKey: opts.SubscriptionKey,
		httpClient:      hc,
	}
}

// Configured reports whether credentials are present; an unconfigured client
// lets the rest of the API run without Vipps in local development.
func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != "" && c.msn != "" && c.subscriptionKey != ""
}

// ======================================================
// ACCESS TOKEN
// ======================================================

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/accessToken/get", nil,
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("client_id", c.clientID)
	req.Header.Set("client_secret", c.clientSecret)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vipps token: unexpected status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("vipps token: %w", err)
	}

	c.accessToken = tok.AccessToken
	// Renew a minute early so an in-flight request never carries an expired
	// token.
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}

// ======================================================
// CHECKOUT SESSION
// ======================================================

type CheckoutInput struct {
	OrderRef    string
	Amount      float64 // major units, converted to øre on the wire
	Currency    string
	Description string
	ReturnURL   string
}

type CheckoutSession struct {
	SessionID string
	URL       string
	OrderRef  string
}

type checkoutRequest struct {
	Amount struct {
		Value    int64  `json:"value"`
		Currency string `json:"currency"`
	} `json:"amount"`
	PaymentMethod struct {
		Type string `json:"type"`
	} `json:"paymentMethod"`
	Reference          string `json:"reference"`
	UserFlow           string `json:"userFlow"`
	ReturnURL          string `json:"returnUrl"`
	PaymentDescription string `json:"paymentDescription"`
}

type checkoutResponse struct {
	SessionID           string `json:"sessionId"`
	CheckoutFrontendURL string `json:"checkoutFrontendUrl"`
}

// CreateCheckoutSession opens a hosted checkout session for the deposit.
// The order ref doubles as the idempotency key, so retrying a failed call
// can never open two sessions for one appointment.
func (c *Client) CreateCheckoutSession(
	ctx context.Context,
	in CheckoutInput,
) (*CheckoutSession, error) {

	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	var body checkoutRequest
	// Round, don't truncate: 1.15 NOK is 115 øre, not 114.
	body.Amount.Value = int64(math.Round(in.Amount * 100))
	body.Amount.Currency = in.Currency
	body.PaymentMethod.Type = "WALLET"
	body.Reference = in.OrderRef
	body.UserFlow = "WEB_REDIRECT"
	body.ReturnURL = in.ReturnURL
	body.PaymentDescription = in.Description

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/checkout/v3/session",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, token)
	req.Header.Set("Idempotency-Key", in.OrderRef)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("vipps checkout: status %d: %s", resp.StatusCode, detail)
	}

	var out checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("vipps checkout: %w", err)
	}

	return &CheckoutSession{
		SessionID: out.SessionID,
		URL:       out.CheckoutFrontendURL,
		OrderRef:  in.OrderRef,
	}, nil
}

type sessionResponse struct {
	SessionState string `json:"sessionState"`
}

// GetSessionState polls the session identified by the order reference.
func (c *Client) GetSessionState(
	ctx context.Context,
	orderRef string,
) (string, error) {

	token, err := c.token(ctx)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+"/checkout/v3/session/"+orderRef, nil,
	)
	if err != nil {
		return "", err
	}
	c.setHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vipps session: unexpected status %d", resp.StatusCode)
	}

	var out sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("vipps session: %w", err)
	}
	return out.SessionState, nil
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)
	req.Header.Set("Merchant-Serial-Number", c.msn)
}

// ======================================================
// SESSION STATE -> PAYMENT EVENT
// ======================================================

// EventForState maps a checkout session state to a payment event. Pending
// and in-progress states map to no event.
func EventForState(state string) (domain.PaymentEvent, bool) {
	switch state {
	case "PaymentSuccessful":
		return domain.PaymentSucceeded, true
	case "PaymentTerminated":
		return domain.PaymentEventFailed, true
	case "SessionExpired":
		return domain.PaymentEventExpired, true
	default:
		return "", false
	}
}
