package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/akashkendre1298/vastureports/config"
)

const artifactIDKey = "artifact_id"

// DownloadClaims binds a one-shot download link to a stored report
type DownloadClaims struct {
	ArtifactID string `json:"aid"`
	Filename   string `json:"fn"`
	jwt.RegisteredClaims
}

// GenerateDownloadToken signs a token for artifactID that expires after ttl
func GenerateDownloadToken(artifactID, filename string, ttl time.Duration, cfg *config.DownloadsConfig) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := DownloadClaims{
		ArtifactID: artifactID,
		Filename:   filename,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.SigningSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseDownloadToken verifies tokenString and returns its claims
func ParseDownloadToken(tokenString string, cfg *config.DownloadsConfig) (*DownloadClaims, error) {
	claims := &DownloadClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.SigningSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ArtifactID == "" {
		return nil, errors.New("invalid download token")
	}
	return claims, nil
}

// DownloadToken validates the :token path parameter and exposes the artifact id it was issued for
func DownloadToken(cfg *config.DownloadsConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := ParseDownloadToken(c.Param("token"), cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Download link is invalid or has expired"})
			return
		}

		c.Set(artifactIDKey, claims.ArtifactID)
		c.Next()
	}
}

// GetArtifactID gets the artifact id set by DownloadToken
func GetArtifactID(c *gin.Context) string {
	if id, exists := c.Get(artifactIDKey); exists {
		return id.(string)
	}
	return ""
}
