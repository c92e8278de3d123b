package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// ComputeSignature builds the canonical message merchant_oid+salt+status+
// total_amount (no separators, fields exactly as received) and returns its
// HMAC-SHA256 under merchantKey, base64-encoded.
func ComputeSignature(merchantOID, salt, status, totalAmount, merchantKey string) string {
	mac := hmac.New(sha256.New, []byte(merchantKey))
	mac.Write([]byte(merchantOID + salt + status + totalAmount))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the received hash against the computed one.
// hmac.Equal keeps the comparison constant-time with respect to
// secret-dependent data.
func VerifySignature(p *CallbackPayload, salt, merchantKey string) bool {
	computed := ComputeSignature(p.MerchantOID, salt, p.Status, p.TotalAmount, merchantKey)
	return hmac.Equal([]byte(computed), []byte(p.Hash))
}
