// Package session mints and verifies the signed session credentials that
// the client-side identity layer exchanges for an active session.
package session

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/seatflow/go-floorplan-server/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Claims are the identity assertions embedded in a session credential.
type Claims struct {
	CompanyID   string
	AccessToken string
}

// Issuer creates session credentials for authenticated tenants. Tokens are
// short-lived; the TTL is enforced through the exp claim.
type Issuer struct {
	signer Signer
	ttl    time.Duration
}

// NewIssuer creates an Issuer signing with signer. Tokens expire after ttl.
func NewIssuer(signer Signer, ttl time.Duration) *Issuer {
	return &Issuer{
		signer: signer,
		ttl:    ttl,
	}
}

// Issue mints a session credential asserting the given identity. The subject
// is the company ID; company_id and access_token are carried as custom
// claims for the client-side identity layer.
func (i *Issuer) Issue(companyID, accessToken string) (string, error) {
	if companyID == "" {
		return "", errors.Wrapf(errors.ErrTokenIssuance, "company id is required")
	}

	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"sub":          companyID,
		"company_id":   companyID,
		"access_token": accessToken,
		"iat":          now.Unix(),
		"exp":          now.Add(i.ttl).Unix(),
		"jti":          uuid.New().String(),
	}

	signedToken, err := i.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrapf(errors.ErrTokenIssuance, "signing session credential: %v", err)
	}
	return signedToken, nil
}

// Verify parses and validates a session credential, returning its identity
// claims. Expired or tampered tokens fail with ErrSessionExpired or
// ErrInvalidSession.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	token, err := jwtlib.Parse(tokenString, i.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, errors.Wrapf(errors.ErrSessionExpired, "parsing session credential")
		}
		return nil, errors.Wrapf(errors.ErrInvalidSession, "parsing session credential: %v", err)
	}

	mapClaims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidSession, "unexpected claims type")
	}

	companyID, _ := mapClaims["company_id"].(string)
	accessToken, _ := mapClaims["access_token"].(string)
	if companyID == "" {
		return nil, errors.Wrapf(errors.ErrInvalidSession, "missing company_id claim")
	}

	return &Claims{
		CompanyID:   companyID,
		AccessToken: accessToken,
	}, nil
}
