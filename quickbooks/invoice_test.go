package quickbooks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validInvoice = `{
	"Line": [{
		"DetailType": "SalesItemLineDetail",
		"Amount": 100.5,
		"SalesItemLineDetail": {"ItemRef": {"name": "Services", "value": "1"}}
	}],
	"CustomerRef": {"value": "42"}
}`

func TestDecodeInvoice(t *testing.T) {
	inv, err := DecodeInvoice(strings.NewReader(validInvoice))
	require.NoError(t, err)
	assert.Equal(t, "42", inv.CustomerRef.Value)
	require.Len(t, inv.Line, 1)
	assert.Equal(t, 100.5, inv.Line[0].Amount)
	assert.Equal(t, "Services", inv.Line[0].SalesItemLineDetail.ItemRef.Name)
}

func TestDecodeInvoiceRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "not_json",
			body: `{`,
		},
		{
			name: "missing_customer_ref",
			body: `{
				"Line": [{
					"DetailType": "SalesItemLineDetail",
					"Amount": 100.5,
					"SalesItemLineDetail": {"ItemRef": {"name": "Services", "value": "1"}}
				}]
			}`,
		},
		{
			name: "missing_amount",
			body: `{
				"Line": [{
					"DetailType": "SalesItemLineDetail",
					"SalesItemLineDetail": {"ItemRef": {"name": "Services", "value": "1"}}
				}],
				"CustomerRef": {"value": "42"}
			}`,
		},
		{
			name: "missing_detail_type",
			body: `{
				"Line": [{
					"Amount": 100.5,
					"SalesItemLineDetail": {"ItemRef": {"name": "Services", "value": "1"}}
				}],
				"CustomerRef": {"value": "42"}
			}`,
		},
		{
			name: "missing_item_ref_value",
			body: `{
				"Line": [{
					"DetailType": "SalesItemLineDetail",
					"Amount": 100.5,
					"SalesItemLineDetail": {"ItemRef": {"name": "Services"}}
				}],
				"CustomerRef": {"value": "42"}
			}`,
		},
		{
			name: "empty_lines",
			body: `{"Line": [], "CustomerRef": {"value": "42"}}`,
		},
		{
			name: "unknown_field",
			body: `{
				"Line": [{
					"DetailType": "SalesItemLineDetail",
					"Amount": 100.5,
					"SalesItemLineDetail": {"ItemRef": {"name": "Services", "value": "1"}}
				}],
				"CustomerRef": {"value": "42"},
				"Surprise": true
			}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeInvoice(strings.NewReader(test.body))
			assert.Error(t, err)
		})
	}
}
