package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminUpdatePaymentStatusInvalidID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("PUT", "/v1/admin/payments/abc/status",
		strings.NewReader(`{"status":"completed"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminUpdatePaymentStatusMissingStatus(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest("PUT", "/v1/admin/payments/1/status", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
