package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

// Roles carried in the token. Staff act for the kennel; customers act for
// themselves through their owner record.
const (
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

type contextKey string

const (
	OwnerIDKey contextKey = "owner_id"
	RoleKey    contextKey = "role"
)

type Claims struct {
	CompanyID uuid.UUID  `json:"company_id"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	Role      string     `json:"role"`
	jwt.RegisteredClaims
}

// JWT validates the bearer token and binds the token's company to the
// request context. Every scoped query downstream is filtered to it.
func JWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token format")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.CompanyID == uuid.Nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no company")
			}

			ctx := scope.Bind(c.Request().Context(), claims.CompanyID)
			ctx = WithRole(ctx, claims.Role)
			if claims.OwnerID != nil {
				ctx = WithOwnerID(ctx, *claims.OwnerID)
			}
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireStaff rejects customer tokens. It must run after JWT.
func RequireStaff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role, _ := RoleFromContext(c.Request().Context()); role != RoleStaff {
				return echo.NewHTTPError(http.StatusForbidden, "staff access required")
			}
			return next(c)
		}
	}
}

// GenerateToken signs a token for the given company and role. ownerID is set
// for customer tokens only.
func GenerateToken(secret string, companyID uuid.UUID, ownerID *uuid.UUID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		CompanyID: companyID,
		OwnerID:   ownerID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
