package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newIdempotentPaymentRouter(repo *mockIdempotencyRepo, userID uuid.UUID, calls *int) *gin.Engine {
	router := gin.New()
	router.POST("/invoices/:id/payments", func(c *gin.Context) {
		c.Set("user_id", userID)
	}, IdempotencyRequired(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusCreated, gin.H{"success": true, "payment_no": *calls})
	})
	return router
}

func TestIdempotencyRequired_MissingKey(t *testing.T) {
	var calls int
	router := newIdempotentPaymentRouter(newMockIdempotencyRepo(), uuid.New(), &calls)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/invoices/"+uuid.NewString()+"/payments", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without Idempotency-Key, got %d", w.Code)
	}
	if calls != 0 {
		t.Errorf("handler must not run without a key, ran %d times", calls)
	}
}

func TestIdempotencyRequired_ReplaysCachedResponse(t *testing.T) {
	var calls int
	userID := uuid.New()
	router := newIdempotentPaymentRouter(newMockIdempotencyRepo(), userID, &calls)
	target := "/invoices/" + uuid.NewString() + "/payments"

	first := httptest.NewRecorder()
	req := httptest.NewRequest("POST", target, nil)
	req.Header.Set(IdempotencyKeyHeader, "pay-once")
	router.ServeHTTP(first, req)

	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}
	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}

	second := httptest.NewRecorder()
	req = httptest.NewRequest("POST", target, nil)
	req.Header.Set(IdempotencyKeyHeader, "pay-once")
	router.ServeHTTP(second, req)

	if calls != 1 {
		t.Errorf("replay must not re-run the handler, ran %d times", calls)
	}
	if second.Code != http.StatusCreated {
		t.Errorf("expected cached 201, got %d", second.Code)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("expected replay marker header")
	}
	if !strings.Contains(second.Body.String(), `"payment_no":1`) {
		t.Errorf("expected cached body from first capture, got %s", second.Body.String())
	}
}

func TestIdempotencyRequired_DistinctKeysProcessSeparately(t *testing.T) {
	var calls int
	router := newIdempotentPaymentRouter(newMockIdempotencyRepo(), uuid.New(), &calls)
	target := "/invoices/" + uuid.NewString() + "/payments"

	for _, key := range []string{"first-charge", "second-charge"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", target, nil)
		req.Header.Set(IdempotencyKeyHeader, key)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("key %q: expected 201, got %d", key, w.Code)
		}
	}

	if calls != 2 {
		t.Errorf("expected one handler run per key, got %d", calls)
	}
}

func TestIdempotencyRequired_KeysScopedPerUser(t *testing.T) {
	repo := newMockIdempotencyRepo()
	var callsA, callsB int
	routerA := newIdempotentPaymentRouter(repo, uuid.New(), &callsA)
	routerB := newIdempotentPaymentRouter(repo, uuid.New(), &callsB)
	target := "/invoices/" + uuid.NewString() + "/payments"

	req := httptest.NewRequest("POST", target, nil)
	req.Header.Set(IdempotencyKeyHeader, "shared-key")
	routerA.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest("POST", target, nil)
	req.Header.Set(IdempotencyKeyHeader, "shared-key")
	routerB.ServeHTTP(httptest.NewRecorder(), req)

	if callsA != 1 || callsB != 1 {
		t.Errorf("expected each user's request to process, got %d/%d", callsA, callsB)
	}
}
