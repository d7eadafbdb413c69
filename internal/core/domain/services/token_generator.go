package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"laundry/internal/core/domain/model/order"

	"github.com/oklog/ulid/v2"
)

const (
	defaultTokenAttempts = 5
	tokenSuffixLength    = 6
	tokenDateLayout      = "20060102"
)

// TokenRegistry answers whether a token is already issued.
type TokenRegistry interface {
	TokenExists(ctx context.Context, token string) (bool, error)
}

// TokenGenerator issues tokens of the form ORD<yyyyMMdd>-<6 alphanumerics>.
//
// The registry check is best effort. Two requests may still race to the same
// token, which is why storage keeps a unique index on it. After maxAttempts
// collisions the generator falls back to a suffix derived from the clock, so
// Generate always returns.
type TokenGenerator struct {
	clock       func() time.Time
	entropy     io.Reader
	maxAttempts int
}

type TokenGeneratorOption func(*TokenGenerator)

func WithTokenClock(clock func() time.Time) TokenGeneratorOption {
	return func(g *TokenGenerator) { g.clock = clock }
}

func WithTokenEntropy(entropy io.Reader) TokenGeneratorOption {
	return func(g *TokenGenerator) { g.entropy = entropy }
}

func WithTokenAttempts(attempts int) TokenGeneratorOption {
	return func(g *TokenGenerator) {
		if attempts > 0 {
			g.maxAttempts = attempts
		}
	}
}

func NewTokenGenerator(opts ...TokenGeneratorOption) *TokenGenerator {
	g := &TokenGenerator{
		clock:       time.Now,
		entropy:     rand.Reader,
		maxAttempts: defaultTokenAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a token the registry does not know yet. A registry error
// ends the search early and returns the current candidate.
func (g *TokenGenerator) Generate(ctx context.Context, registry TokenRegistry) order.Token {
	now := g.clock()
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		candidate, err := g.candidate(now)
		if err != nil {
			break
		}
		token, err := order.NewToken(candidate)
		if err != nil {
			continue
		}
		exists, err := registry.TokenExists(ctx, token.String())
		if err != nil || !exists {
			return token
		}
	}
	return g.fallback()
}

// candidate takes its suffix from the random tail of a ULID, which only uses
// upper-case letters and digits.
func (g *TokenGenerator) candidate(now time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), g.entropy)
	if err != nil {
		return "", err
	}
	s := id.String()
	return fmt.Sprintf("%s%s-%s", order.TokenPrefix, now.Format(tokenDateLayout), s[len(s)-tokenSuffixLength:]), nil
}

func (g *TokenGenerator) fallback() order.Token {
	now := g.clock()
	suffix := strings.ToUpper(strconv.FormatInt(now.UnixNano(), 36))
	if len(suffix) < tokenSuffixLength {
		suffix = strings.Repeat("0", tokenSuffixLength-len(suffix)) + suffix
	}
	token, _ := order.RestoreToken(fmt.Sprintf("%s%s-%s", order.TokenPrefix, now.Format(tokenDateLayout), suffix))
	return token
}
