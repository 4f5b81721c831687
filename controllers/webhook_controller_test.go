package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rahul-714/MarketNest/config"
	"github.com/Rahul-714/MarketNest/gateway"
	"github.com/Rahul-714/MarketNest/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// newTestRouter wires the controllers against an empty configuration and
// registers the routes under test. The admin middleware is replaced by a
// stub that injects an operations user.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("RAZORPAY_WEBHOOK_SECRET", "")
	t.Setenv("PAYPAL_WEBHOOK_SECRET", "")

	Init(nil, gateway.NewFactory(&config.Config{}))

	r := gin.New()
	r.POST("/v1/webhooks/:method", HandleGatewayWebhook)
	r.PUT("/v1/admin/payments/:id/status", asAdmin(AdminUpdatePaymentStatus))
	return r
}

func asAdmin(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("admin", models.Admin{ID: 1, Email: "ops@example.com"})
		h(c)
	}
}

func TestWebhookUnknownGateway(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("POST", "/v1/webhooks/bitcoin", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebhookUnsupportedForOfflineMethod(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("POST", "/v1/webhooks/cod", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookUnmatchedEventAccepted(t *testing.T) {
	router := newTestRouter(t)

	// An event carrying no payment keys matches nothing and must be
	// accepted so the provider stops redelivering.
	body := `{"event":"payment.captured","payload":{"payment":{"entity":{"status":"captured"}}}}`
	req := httptest.NewRequest("POST", "/v1/webhooks/razorpay", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookMalformedBodyRejected(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("POST", "/v1/webhooks/razorpay", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
