package quickbooks

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

// The invoice request body is the one relay input with structural
// validation. Field names and casing follow the QuickBooks API.

// ItemRef identifies an item by name and value identifier.
type ItemRef struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// SalesItemLineDetail carries the item reference of a sales line.
type SalesItemLineDetail struct {
	ItemRef ItemRef `json:"ItemRef" validate:"required"`
}

// LineItem is one invoice line with a detail-type tag and amount.
type LineItem struct {
	DetailType          string              `json:"DetailType" validate:"required"`
	Amount              float64             `json:"Amount" validate:"required"`
	SalesItemLineDetail SalesItemLineDetail `json:"SalesItemLineDetail" validate:"required"`
}

// CustomerRef identifies the invoiced customer by value identifier.
type CustomerRef struct {
	Value string `json:"value" validate:"required"`
}

// Invoice is the request body for invoice creation.
type Invoice struct {
	Line        []LineItem  `json:"Line" validate:"required,min=1,dive"`
	CustomerRef CustomerRef `json:"CustomerRef" validate:"required"`
}

var validate = validator.New()

// DecodeInvoice parses and validates an invoice body before any
// outbound payload is constructed. Unknown fields are rejected.
func DecodeInvoice(r io.Reader) (Invoice, error) {
	var inv Invoice
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&inv); err != nil {
		return inv, fmt.Errorf("invoice decode: %w", err)
	}
	if err := validate.Struct(inv); err != nil {
		return inv, fmt.Errorf("invoice validation: %w", err)
	}
	return inv, nil
}
