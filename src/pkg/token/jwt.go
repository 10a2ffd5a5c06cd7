package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Pair is the access/refresh couple handed to a client after login.
type Pair struct {
	Access           string
	Refresh          string
	RefreshID        string
	RefreshExpiresAt time.Time
}

type Manager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(secret, issuer string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

func (m *Manager) Issue(userID, role string) (*Pair, error) {
	now := m.now()
	access, err := m.sign(userID, role, TypeAccess, uuid.NewString(), now, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshID := uuid.NewString()
	refresh, err := m.sign(userID, role, TypeRefresh, refreshID, now, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{
		Access:           access,
		Refresh:          refresh,
		RefreshID:        refreshID,
		RefreshExpiresAt: now.Add(m.refreshTTL),
	}, nil
}

func (m *Manager) sign(userID, role, tokenType, id string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claim{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies signature, expiry and token type.
func (m *Manager) Parse(raw, tokenType string) (*Claim, error) {
	claims := &Claim{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, tokenType)
	}
	return claims, nil
}
