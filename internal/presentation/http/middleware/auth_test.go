package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/medicore/hms-api/internal/domain/entity"
	"github.com/medicore/hms-api/internal/domain/enum"
	"github.com/medicore/hms-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTManager() *utils.JWTManager {
	return utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := gin.New()
	router.GET("/ping", AuthMiddleware(newTestJWTManager()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	router := gin.New()
	router.GET("/ping", AuthMiddleware(newTestJWTManager()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, header := range []string{"token-without-scheme", "Basic abc123", "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := gin.New()
	router.GET("/ping", AuthMiddleware(newTestJWTManager()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Signed with a different secret
	other := utils.NewJWTManager("other-secret", time.Hour, 24*time.Hour)
	token, err := other.GenerateAccessToken(uuid.New(), "eve@medicore.test", enum.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_ValidTokenSetsClaims(t *testing.T) {
	jwtManager := newTestJWTManager()
	userID := uuid.New()

	var gotUserID uuid.UUID
	var gotRole enum.Role
	router := gin.New()
	router.GET("/ping", AuthMiddleware(jwtManager), func(c *gin.Context) {
		gotUserID = c.MustGet("user_id").(uuid.UUID)
		gotRole = c.MustGet("user_role").(enum.Role)
		c.Status(http.StatusOK)
	})

	token, err := jwtManager.GenerateAccessToken(userID, "doc@medicore.test", enum.RoleDoctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUserID != userID {
		t.Errorf("expected user id %s in context, got %s", userID, gotUserID)
	}
	if gotRole != enum.RoleDoctor {
		t.Errorf("expected doctor role in context, got %s", gotRole)
	}
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name     string
		role     interface{}
		allowed  []enum.Role
		wantCode int
	}{
		{"allowed role", enum.RoleAdmin, []enum.Role{enum.RoleAdmin, enum.RoleReceptionist}, http.StatusOK},
		{"denied role", enum.RolePatient, []enum.Role{enum.RoleAdmin}, http.StatusForbidden},
		{"missing role", nil, []enum.Role{enum.RoleAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/ping", func(c *gin.Context) {
				if tt.role != nil {
					c.Set("user_role", tt.role)
				}
			}, RequireRoles(tt.allowed...), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/ping", nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}

func TestPatientScopeMiddleware_ScopesLinkedPatient(t *testing.T) {
	patientRepo := newMockPatientRepo()
	userID := uuid.New()
	patient := &entity.Patient{UserID: &userID}
	patientRepo.Create(context.Background(), patient)

	var scoped uuid.UUID
	router := gin.New()
	router.GET("/mine", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", enum.RolePatient)
	}, PatientScopeMiddleware(patientRepo), func(c *gin.Context) {
		scoped = c.MustGet("patient_id").(uuid.UUID)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mine", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if scoped != patient.ID {
		t.Errorf("expected patient id %s in context, got %s", patient.ID, scoped)
	}
}

func TestPatientScopeMiddleware_NoLinkedRecord(t *testing.T) {
	router := gin.New()
	router.GET("/mine", func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Set("user_role", enum.RolePatient)
	}, PatientScopeMiddleware(newMockPatientRepo()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mine", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestPatientScopeMiddleware_StaffPassthrough(t *testing.T) {
	router := gin.New()
	router.GET("/mine", func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Set("user_role", enum.RoleNurse)
	}, PatientScopeMiddleware(newMockPatientRepo()), func(c *gin.Context) {
		if _, exists := c.Get("patient_id"); exists {
			t.Error("staff requests must not carry a patient scope")
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mine", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
