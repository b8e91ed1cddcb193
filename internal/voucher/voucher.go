// Package voucher verifies signed credit top-up codes. A voucher has the
// form RN-<credits>-<nonce>-<signature> where the signature is a hex
// HMAC-SHA256 over "<credits>|<nonce>" with a shared secret, the same
// construction the payment backend uses to verify gateway callbacks.
package voucher

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalid is returned for any malformed or wrongly signed voucher. The
// cause is deliberately not detailed to the caller.
var ErrInvalid = errors.New("invalid voucher code")

const prefix = "RN"

// Sign produces the signature for a voucher with the given credits and
// nonce. Exposed for issuing tools and tests.
func Sign(credits int64, nonce, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d|%s", credits, nonce)
	return hex.EncodeToString(mac.Sum(nil))
}

// Format assembles a full voucher code.
func Format(credits int64, nonce, secret string) string {
	return strings.Join([]string{prefix, strconv.FormatInt(credits, 10), nonce, Sign(credits, nonce, secret)}, "-")
}

// Verify checks a voucher code and returns the credit amount it grants.
func Verify(code, secret string) (int64, error) {
	if secret == "" {
		return 0, errors.New("no voucher secret configured")
	}

	parts := strings.Split(strings.TrimSpace(code), "-")
	if len(parts) != 4 || parts[0] != prefix {
		return 0, ErrInvalid
	}

	credits, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || credits <= 0 {
		return 0, ErrInvalid
	}

	want := Sign(credits, parts[2], secret)
	if !hmac.Equal([]byte(want), []byte(strings.ToLower(parts[3]))) {
		return 0, ErrInvalid
	}

	return credits, nil
}
