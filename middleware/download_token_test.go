package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/akashkendre1298/vastureports/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testDownloadsConfig() *config.DownloadsConfig {
	return &config.DownloadsConfig{SigningSecret: "test-signing-secret", TTLMinutes: 10}
}

func TestGenerateDownloadToken(t *testing.T) {
	cfg := testDownloadsConfig()

	token, expiresAt, err := GenerateDownloadToken("artifact-1", "clients_report.pdf", 10*time.Minute, cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if token == "" {
		t.Error("Expected non-empty token")
	}

	expected := time.Now().Add(10 * time.Minute)
	if expiresAt.Before(expected.Add(-time.Minute)) || expiresAt.After(expected.Add(time.Minute)) {
		t.Errorf("Expiry time %v is not within expected range of %v", expiresAt, expected)
	}

	claims, err := ParseDownloadToken(token, cfg)
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}
	if claims.ArtifactID != "artifact-1" || claims.Filename != "clients_report.pdf" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
}

func TestParseDownloadTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateDownloadToken("artifact-1", "a.pdf", time.Minute, testDownloadsConfig())
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := ParseDownloadToken(token, &config.DownloadsConfig{SigningSecret: "other"}); err == nil {
		t.Error("Expected error for token signed with another secret")
	}
}

func TestDownloadTokenMiddleware(t *testing.T) {
	cfg := testDownloadsConfig()

	valid, _, err := GenerateDownloadToken("artifact-42", "cases_report.xlsx", time.Minute, cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, DownloadClaims{
		ArtifactID: "artifact-42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	expiredString, _ := expired.SignedString([]byte(cfg.SigningSecret))

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{"valid token", valid, http.StatusOK},
		{"expired token", expiredString, http.StatusNotFound},
		{"garbage token", "not.a.token", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/downloads/:token", DownloadToken(cfg), func(c *gin.Context) {
				c.String(http.StatusOK, GetArtifactID(c))
			})

			req := httptest.NewRequest("GET", "/downloads/"+tt.token, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedStatus == http.StatusOK && w.Body.String() != "artifact-42" {
				t.Errorf("Expected artifact id in body, got '%s'", w.Body.String())
			}
		})
	}
}

func TestGetArtifactIDEmpty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if GetArtifactID(c) != "" {
		t.Error("Expected empty string for unset artifact id")
	}
}
