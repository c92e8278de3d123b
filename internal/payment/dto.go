package payment

import (
	"encoding/json"
	"net/url"

	errors "github.com/frahmantamala/order-management/internal"
	"github.com/frahmantamala/order-management/internal/core/common/validation"
)

// Gateway status values. Anything other than StatusSuccess is a failure.
const StatusSuccess = "success"

// CallbackPayload is the per-request notification body. Every field is
// optional at parse time; Validate decides which absences are fatal.
type CallbackPayload struct {
	MerchantOID string `json:"merchant_oid"`
	Status      string `json:"status"`
	Hash        string `json:"hash"`
	TotalAmount string `json:"total_amount"`
}

// ParseCallbackPayload extracts the notification fields from a raw body.
// JSON is attempted first; when that yields no usable structure the same
// four fields are read from URL-encoded form parameters, which is how the
// gateway posts by default.
func ParseCallbackPayload(body []byte) *CallbackPayload {
	var p CallbackPayload
	if err := json.Unmarshal(body, &p); err == nil && !p.empty() {
		return &p
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return &p
	}

	return &CallbackPayload{
		MerchantOID: values.Get("merchant_oid"),
		Status:      values.Get("status"),
		Hash:        values.Get("hash"),
		TotalAmount: values.Get("total_amount"),
	}
}

func (p *CallbackPayload) empty() bool {
	return p.MerchantOID == "" && p.Status == "" && p.Hash == "" && p.TotalAmount == ""
}

// Validate fails with the missing-parameters protocol error when status or
// hash is absent after both parse attempts. merchant_oid is not checked
// here: an empty one is an unresolvable order reference, and order id
// resolution owns that rejection. total_amount is allowed to be empty; it
// then participates in the signature as the empty string, matching gateway
// behavior.
func (p *CallbackPayload) Validate() error {
	validator := validation.NewValidator()

	validator.Field("status", p.Status).Required()
	validator.Field("hash", p.Hash).Required()

	if appErr := validator.Validate(); appErr != nil {
		return errors.NewValidationError("Missing required parameters", errors.ErrCodeMissingParams).
			WithDetails(appErr.Details)
	}
	return nil
}
