package adapters

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

const (
	deviceTokenPrefix = "dt_"
	deviceTokenBytes  = 32

	defaultLinkExpiry = 5 * time.Minute
	linkIssuer        = "ledger"
	linkAudience      = "statement-download"
)

// deviceTokenGenerator implements adapter.DeviceTokenGenerator.
type deviceTokenGenerator struct {
	now func() time.Time
}

// NewDeviceTokenGenerator creates a generator of "dt_<time>_<hex>" tokens.
func NewDeviceTokenGenerator() adapter.DeviceTokenGenerator {
	return &deviceTokenGenerator{now: time.Now}
}

// GenerateDeviceToken returns a token carrying 256 bits of randomness.
func (g *deviceTokenGenerator) GenerateDeviceToken() (string, error) {
	tokenBytes := make([]byte, deviceTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	stamp := strconv.FormatInt(g.now().UnixMilli(), 36)
	return deviceTokenPrefix + stamp + "_" + hex.EncodeToString(tokenBytes), nil
}

// ExportLinkClaims represents the JWT claims of a download link.
type ExportLinkClaims struct {
	DeviceID string `json:"device_id"`
	Format   string `json:"format"`
	jwt.RegisteredClaims
}

// exportLinkService implements adapter.ExportLinkService with HS256 tokens.
type exportLinkService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewExportLinkService creates a new export link service instance.
func NewExportLinkService(secret string, expiry time.Duration) adapter.ExportLinkService {
	if expiry <= 0 {
		expiry = defaultLinkExpiry
	}
	return &exportLinkService{
		secret: []byte(secret),
		expiry: expiry,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// IssueLinkToken signs a short-lived token for one statement download.
func (s *exportLinkService) IssueLinkToken(deviceID, format string) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("export link secret is not configured")
	}

	now := s.now()
	expiresAt := now.Add(s.expiry)
	claims := ExportLinkClaims{
		DeviceID: deviceID,
		Format:   format,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    linkIssuer,
			Audience:  jwt.ClaimStrings{linkAudience},
			Subject:   deviceID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign export link: %w", err)
	}
	return token, expiresAt, nil
}

// ParseLinkToken parses and validates a download link token.
func (s *exportLinkService) ParseLinkToken(tokenString string) (*adapter.ExportLinkClaims, error) {
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("export link secret is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &ExportLinkClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(linkIssuer),
		jwt.WithAudience(linkAudience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*ExportLinkClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &adapter.ExportLinkClaims{
		DeviceID:  claims.DeviceID,
		Format:    claims.Format,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
