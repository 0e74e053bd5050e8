// Package billing integrates with Stripe for subscription checkout and tier
// lookups. It talks to the REST API directly; the server never stores card
// data or webhooks secrets beyond the API key.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yassine/cvbuilder/internal/resume"
)

const defaultBaseURL = "https://api.stripe.com"

// Subscription plan prices in minor currency units. The tier attached to a
// subscription is derived from the amount actually paid, so grandfathered
// prices still map to the right tier.
const (
	PremiumPlanAmount    = 4900
	EnterprisePlanAmount = 9900
)

// APIError is a non-2xx response from Stripe.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("stripe api error (%d): %s", e.StatusCode, e.Message)
}

// UnknownPlanError indicates a checkout request for a plan that is not sold.
type UnknownPlanError struct {
	Plan string
}

func (e *UnknownPlanError) Error() string {
	return fmt.Sprintf("unknown subscription plan: %s", e.Plan)
}

// Client is a minimal Stripe REST client.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Stripe client with the given secret key.
func NewClient(secretKey string) *Client {
	return &Client{
		secretKey:  secretKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL overrides the API host, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// planAmount maps a plan name to its price.
func planAmount(plan string) (int64, error) {
	switch plan {
	case resume.TierPremium:
		return PremiumPlanAmount, nil
	case resume.TierEnterprise:
		return EnterprisePlanAmount, nil
	default:
		return 0, &UnknownPlanError{Plan: plan}
	}
}

// TierForAmount maps a paid subscription amount to a tier. Amounts below the
// premium price should not occur but map to free defensively.
func TierForAmount(amount int64) string {
	switch {
	case amount >= EnterprisePlanAmount:
		return resume.TierEnterprise
	case amount >= PremiumPlanAmount:
		return resume.TierPremium
	default:
		return resume.TierFree
	}
}

// CheckoutSession is the subset of Stripe's session object the app uses.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession starts a subscription checkout for a plan and returns
// the hosted payment page the client should redirect to.
func (c *Client) CreateCheckoutSession(ctx context.Context, email, plan, successURL, cancelURL string) (*CheckoutSession, error) {
	amount, err := planAmount(plan)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("customer_email", email)
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", "mad")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(amount, 10))
	form.Set("line_items[0][price_data][recurring][interval]", "month")
	form.Set("line_items[0][price_data][product_data][name]", fmt.Sprintf("CV Builder %s plan", plan))

	var session CheckoutSession
	if err := c.post(ctx, "/v1/checkout/sessions", form, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

type customerList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type subscriptionList struct {
	Data []struct {
		ID    string `json:"id"`
		Items struct {
			Data []struct {
				Price struct {
					UnitAmount int64 `json:"unit_amount"`
				} `json:"price"`
			} `json:"data"`
		} `json:"items"`
	} `json:"data"`
}

// CheckSubscription resolves a user's current tier from their active Stripe
// subscriptions. Users with no Stripe customer or no active subscription are
// on the free tier.
func (c *Client) CheckSubscription(ctx context.Context, email string) (string, error) {
	var customers customerList
	query := url.Values{"email": {email}, "limit": {"1"}}
	if err := c.get(ctx, "/v1/customers", query, &customers); err != nil {
		return "", err
	}
	if len(customers.Data) == 0 {
		return resume.TierFree, nil
	}

	var subs subscriptionList
	query = url.Values{"customer": {customers.Data[0].ID}, "status": {"active"}, "limit": {"1"}}
	if err := c.get(ctx, "/v1/subscriptions", query, &subs); err != nil {
		return "", err
	}
	if len(subs.Data) == 0 || len(subs.Data[0].Items.Data) == 0 {
		return resume.TierFree, nil
	}

	return TierForAmount(subs.Data[0].Items.Data[0].Price.UnitAmount), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build stripe request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		message := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &errBody) == nil && errBody.Error.Message != "" {
			message = errBody.Error.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode stripe response: %w", err)
	}
	return nil
}
