package payment

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// SignatureVerifier authenticates provider notifications against the shared
// server key. The key is injected at construction; config validation refuses
// to start the service without one, so a missing key can never fail open here.
type SignatureVerifier struct {
	serverKey string
}

func NewSignatureVerifier(serverKey string) *SignatureVerifier {
	return &SignatureVerifier{serverKey: serverKey}
}

// Verify recomputes the provider signature over the exact textual form of the
// notification fields. Gross amount must be passed as received; reformatting
// it changes the digest.
func (v *SignatureVerifier) Verify(orderID, statusCode, grossAmount, signature string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + v.serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(signature))) == 1
}
