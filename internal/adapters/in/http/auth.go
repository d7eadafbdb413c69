package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "laundry.actor"

var (
	errMissingToken = errors.New("bearer token is missing")
	errBadSubject   = errors.New("token subject is not a numeric user id")
)

// Claims is the payload of the bearer token. Subject carries the user id.
type Claims struct {
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// SignToken mints an HS256 token for the given identity.
func SignToken(secret []byte, id int64, role, name, email string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		Role:  role,
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseActor verifies the token and turns its claims into an Actor.
func ParseActor(secret []byte, raw string) (kernel.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return kernel.Actor{}, errs.NewUnauthorizedError(err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return kernel.Actor{}, errs.NewUnauthorizedError(errBadSubject)
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Actor{}, errs.NewUnauthorizedError(err)
	}
	actor, err := kernel.NewActor(kernel.ID(id), role, claims.Name, claims.Email)
	if err != nil {
		return kernel.Actor{}, errs.NewUnauthorizedError(err)
	}
	return actor, nil
}

// authenticate requires a valid bearer token and stores the actor on the context.
func authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return errs.NewUnauthorizedError(errMissingToken)
			}
			actor, err := ParseActor(secret, raw)
			if err != nil {
				return err
			}
			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, errs.NewUnauthorizedError(fmt.Errorf("no actor on %s %s", c.Request().Method, c.Path()))
	}
	return actor, nil
}
