package security

import (
	"database/sql"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the signed hospital session token.
const SessionCookieName = "session"

// SessionTTL bounds token validity. The verifier enforces it via the exp
// claim; the cookie max-age is advisory only.
const SessionTTL = 24 * time.Hour

// Database interface for dependency injection
type Database interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// SignSessionToken issues a signed token embedding the hospital identity,
// expiring 24 hours from issuance.
func SignSessionToken(hospitalID string) (string, error) {
	return signSessionTokenAt(hospitalID, time.Now())
}

func signSessionTokenAt(hospitalID string, issuedAt time.Time) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  hospitalID,
		"exp":  issuedAt.Add(SessionTTL).Unix(),
		"iat":  issuedAt.Unix(),
		"type": "session",
	})
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken resolves a session token to a hospital identity.
// Expired, tampered or malformed tokens all come back as errors; callers
// treat any failure as "no identity".
func ValidateSessionToken(tokenStr string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "session" {
		return "", errors.New("invalid token type")
	}

	hospitalID, ok := claims["sub"].(string)
	if !ok || hospitalID == "" {
		return "", errors.New("invalid hospital identity")
	}

	return hospitalID, nil
}

// SetSessionCookie delivers the token as an HTTP-only cookie.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookieName, token, int(SessionTTL.Seconds()), "/", "", false, true)
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// HospitalAuth creates a Gin middleware guarding hospital-area routes. It
// resolves the session cookie to a hospital identity and aborts with 401
// when no valid identity is present, so handlers behind it can rely on
// hospital_id being set.
func HospitalAuth(db Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookieName)
		if err != nil || tokenStr == "" {
			SendError(c, http.StatusUnauthorized, CodeLoginRequired, "Login required",
				"Please log in to access the hospital area", nil)
			c.Abort()
			return
		}

		hospitalID, err := ValidateSessionToken(tokenStr)
		if err != nil {
			SendError(c, http.StatusUnauthorized, CodeInvalidToken, "Invalid or expired session",
				"Your session is invalid or has expired. Please log in again", nil)
			c.Abort()
			return
		}

		var exists bool
		err = db.QueryRow(`SELECT EXISTS(SELECT 1 FROM hospital WHERE id=$1)`, hospitalID).Scan(&exists)
		if err != nil {
			SendError(c, http.StatusInternalServerError, CodeAuthVerificationError, "Authentication verification failed",
				"Unable to verify hospital account. Please try again later", nil)
			c.Abort()
			return
		}
		if !exists {
			SendError(c, http.StatusUnauthorized, CodeHospitalNotFound, "Hospital account not found",
				"Your hospital account was not found. Please register or contact support", nil)
			c.Abort()
			return
		}

		c.Set("hospital_id", hospitalID)
		c.Next()
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// echo the caller's origin so the session cookie survives
		// credentialed cross-origin requests
		allowOrigin := "*"
		if origin != "" {
			allowOrigin = origin
		}

		c.Header("Access-Control-Allow-Origin", allowOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Accept, Origin, Cache-Control")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
