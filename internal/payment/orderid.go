package payment

import (
	"strconv"
	"strings"
)

// merchant_oid structure: the internal order id prefixed with the marker and
// optionally followed by the delimiter plus extra checkout data.
const (
	merchantOIDMarker    = "SP"
	merchantOIDDelimiter = "DR"
)

// ResolveOrderID decodes a merchant_oid into the internal order id. The
// second return value is false when the input is empty (unresolved). A
// remainder that is not base-10 resolves to id 0; no valid order carries id
// zero, so callers treat 0 as not-found rather than failing the decode.
//
// The admission gate and the webhook handler both call this exact function;
// resolution must never diverge between them.
func ResolveOrderID(merchantOID string) (int64, bool) {
	if merchantOID == "" {
		return 0, false
	}

	head, _, _ := strings.Cut(merchantOID, merchantOIDDelimiter)
	digits := strings.ReplaceAll(head, merchantOIDMarker, "")

	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, true
	}
	return id, true
}
