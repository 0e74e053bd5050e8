package billing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassine/cvbuilder/internal/resume"
)

func TestTierForAmount(t *testing.T) {
	assert.Equal(t, resume.TierEnterprise, TierForAmount(9900))
	assert.Equal(t, resume.TierEnterprise, TierForAmount(19900))
	assert.Equal(t, resume.TierPremium, TierForAmount(4900))
	assert.Equal(t, resume.TierPremium, TierForAmount(9899))
	assert.Equal(t, resume.TierFree, TierForAmount(4899))
	assert.Equal(t, resume.TierFree, TierForAmount(0))
}

func TestCreateCheckoutSession(t *testing.T) {
	var gotAuth, gotMode, gotEmail, gotAmount string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotAuth = r.Header.Get("Authorization")
		gotMode = r.PostForm.Get("mode")
		gotEmail = r.PostForm.Get("customer_email")
		gotAmount = r.PostForm.Get("line_items[0][price_data][unit_amount]")
		fmt.Fprint(w, `{"id": "cs_test_123", "url": "https://checkout.stripe.com/pay/cs_test_123"}`)
	}))
	defer srv.Close()

	client := NewClient("sk_test_abc").WithBaseURL(srv.URL)
	session, err := client.CreateCheckoutSession(context.Background(), "amina@example.com", resume.TierPremium,
		"https://app.example.com/success", "https://app.example.com/cancel")
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", session.URL)
	assert.Equal(t, "Bearer sk_test_abc", gotAuth)
	assert.Equal(t, "subscription", gotMode)
	assert.Equal(t, "amina@example.com", gotEmail)
	assert.Equal(t, "4900", gotAmount)
}

func TestCreateCheckoutSession_UnknownPlan(t *testing.T) {
	client := NewClient("sk_test_abc")
	_, err := client.CreateCheckoutSession(context.Background(), "amina@example.com", "platinum", "s", "c")
	var unknown *UnknownPlanError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "platinum", unknown.Plan)
}

func newSubscriptionServer(t *testing.T, customerJSON, subscriptionJSON string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/customers":
			fmt.Fprint(w, customerJSON)
		case "/v1/subscriptions":
			fmt.Fprint(w, subscriptionJSON)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
}

func TestCheckSubscription_ActivePremium(t *testing.T) {
	srv := newSubscriptionServer(t,
		`{"data": [{"id": "cus_123"}]}`,
		`{"data": [{"id": "sub_123", "items": {"data": [{"price": {"unit_amount": 4900}}]}}]}`)
	defer srv.Close()

	client := NewClient("sk_test_abc").WithBaseURL(srv.URL)
	tier, err := client.CheckSubscription(context.Background(), "amina@example.com")
	require.NoError(t, err)
	assert.Equal(t, resume.TierPremium, tier)
}

func TestCheckSubscription_ActiveEnterprise(t *testing.T) {
	srv := newSubscriptionServer(t,
		`{"data": [{"id": "cus_123"}]}`,
		`{"data": [{"id": "sub_123", "items": {"data": [{"price": {"unit_amount": 9900}}]}}]}`)
	defer srv.Close()

	client := NewClient("sk_test_abc").WithBaseURL(srv.URL)
	tier, err := client.CheckSubscription(context.Background(), "amina@example.com")
	require.NoError(t, err)
	assert.Equal(t, resume.TierEnterprise, tier)
}

func TestCheckSubscription_NoCustomer(t *testing.T) {
	srv := newSubscriptionServer(t, `{"data": []}`, `{}`)
	defer srv.Close()

	client := NewClient("sk_test_abc").WithBaseURL(srv.URL)
	tier, err := client.CheckSubscription(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Equal(t, resume.TierFree, tier)
}

func TestCheckSubscription_NoActiveSubscription(t *testing.T) {
	srv := newSubscriptionServer(t, `{"data": [{"id": "cus_123"}]}`, `{"data": []}`)
	defer srv.Close()

	client := NewClient("sk_test_abc").WithBaseURL(srv.URL)
	tier, err := client.CheckSubscription(context.Background(), "amina@example.com")
	require.NoError(t, err)
	assert.Equal(t, resume.TierFree, tier)
}

func TestStripeErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"message": "Invalid API Key provided"}}`)
	}))
	defer srv.Close()

	client := NewClient("sk_bad").WithBaseURL(srv.URL)
	_, err := client.CheckSubscription(context.Background(), "amina@example.com")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Invalid API Key")
}
