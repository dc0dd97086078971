// Package signing implements the canonical parameter encoding and
// HMAC-SHA256 scheme used to authenticate signed redirects from the
// external platform.
package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
)

// SignatureField is the query parameter that carries the signature itself.
// It is excluded from the signed payload.
const SignatureField = "hmac"

// Canonical serializes params into the exact byte string that is signed:
// keys sorted ascending, form-encoded key=value pairs joined with '&'.
// The signatureField entry, if present, is excluded. Deterministic for a
// given mapping regardless of original parameter order.
func Canonical(params map[string]string, signatureField string) string {
	values := make(url.Values, len(params))
	for k, v := range params {
		if k == signatureField {
			continue
		}
		values.Set(k, v)
	}
	// url.Values.Encode sorts by key and applies standard query escaping
	return values.Encode()
}

// Sign computes the HMAC-SHA256 of message under secret, rendered as
// lowercase hexadecimal.
func Sign(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignParams computes the digest for a parameter mapping, excluding the
// signature field.
func SignParams(params map[string]string, secret string) string {
	return Sign(secret, Canonical(params, SignatureField))
}

// Verify checks the claimed digest in params[SignatureField] against the
// digest computed over the remaining parameters. It never returns an error:
// a missing or malformed signature is simply a failed verification.
// Comparison is constant-time.
func Verify(params map[string]string, secret string) bool {
	claimed, ok := params[SignatureField]
	if !ok || claimed == "" {
		return false
	}
	expected := SignParams(params, secret)
	return hmac.Equal([]byte(expected), []byte(claimed))
}
