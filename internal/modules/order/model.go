// README: Order records, classification outcomes and routing decisions.
package order

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"pedidos/internal/modules/delivery"
)

// Classification is the shape detected in a completion reply.
type Classification int

const (
	ClassUnstructured Classification = iota
	ClassAddressOnly
	ClassComplete
)

func (c Classification) String() string {
	switch c {
	case ClassComplete:
		return "complete"
	case ClassAddressOnly:
		return "address_only"
	default:
		return "unstructured"
	}
}

// Order is a customer's pizza order as emitted by the completion service
// and forwarded to the automation webhook. Wire names follow the storefront's
// Portuguese JSON contract.
type Order struct {
	Name        string   `json:"nome" validate:"required"`
	Product     string   `json:"produto" validate:"required"`
	Quantity    Quantity `json:"quantidade" validate:"gte=1"`
	Payment     string   `json:"pagamento" validate:"required"`
	Address     string   `json:"endereco" validate:"required"`
	Phone       string   `json:"telefone" validate:"required"`
	Note        string   `json:"observacao,omitempty"`
	Price       *Price   `json:"valor,omitempty"`
	Timestamp   string   `json:"datahora,omitempty"`
	OrderNumber *int     `json:"numero_pedido,omitempty"`
}

// textKeys are the free-text order fields. Models sometimes emit phone
// numbers or house numbers as bare JSON numbers; those decode as text.
var textKeys = []string{"nome", "produto", "pagamento", "endereco", "telefone", "observacao"}

func (o *Order) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	for _, k := range textKeys {
		if v, ok := fields[k]; ok {
			fields[k] = numberAsText(v)
		}
	}
	norm, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	type plain Order
	return json.Unmarshal(norm, (*plain)(o))
}

// numberAsText quotes a bare JSON number; anything else is returned as is.
func numberAsText(v json.RawMessage) json.RawMessage {
	raw := strings.TrimSpace(string(v))
	if !isJSONNumber(raw) {
		return v
	}
	quoted, err := json.Marshal(raw)
	if err != nil {
		return v
	}
	return quoted
}

func isJSONNumber(raw string) bool {
	if raw == "" || !strings.ContainsAny(raw[:1], "-0123456789") {
		return false
	}
	var n json.Number
	return json.Unmarshal([]byte(raw), &n) == nil
}

func (o *Order) normalize() {
	o.Name = strings.TrimSpace(o.Name)
	o.Product = strings.TrimSpace(o.Product)
	o.Payment = strings.TrimSpace(o.Payment)
	o.Address = strings.TrimSpace(o.Address)
	o.Phone = strings.TrimSpace(o.Phone)
	o.Note = strings.TrimSpace(o.Note)
}

// AddressOnly is the reply shape used when the model only confirms a
// delivery address.
type AddressOnly struct {
	Address string `json:"endereco"`
}

// DirectOrder is the form-submitted order accepted by /api/pedido.
type DirectOrder struct {
	Name          string `json:"nome" validate:"required"`
	Address       string `json:"endereco" validate:"required"`
	Phone         string `json:"telefone" validate:"required"`
	Items         string `json:"pedido" validate:"required"`
	PaymentMethod string `json:"forma_pagamento" validate:"required"`
	Notes         string `json:"observacoes"`
}

func (d *DirectOrder) normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Address = strings.TrimSpace(d.Address)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Items = strings.TrimSpace(d.Items)
	d.PaymentMethod = strings.TrimSpace(d.PaymentMethod)
	d.Notes = strings.TrimSpace(d.Notes)
}

// Parsed holds exactly one of Order or Address.
type Parsed struct {
	Order   *Order
	Address *AddressOnly
}

// Quantity accepts a JSON number or a numeric string.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		*q = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) {
			return fmt.Errorf("quantidade %q is not an integer", s)
		}
		if f > maxQuantity || f < -maxQuantity {
			return fmt.Errorf("quantidade %q is out of range", s)
		}
		n = int(f)
	}
	*q = Quantity(n)
	return nil
}

// maxQuantity bounds float-encoded quantities before the int conversion.
const maxQuantity = math.MaxInt32

// Price is an optional order total. It accepts numbers, plain numeric
// strings and Brazilian formatted values such as "R$ 1.234,50". Text that
// is not an amount ("a combinar") is kept verbatim in Text and Decimal
// stays zero.
type Price struct {
	decimal.Decimal
	Text string
}

// Numeric reports whether the value was read as an amount.
func (p Price) Numeric() bool {
	return p.Text == ""
}

func (p *Price) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	var s string
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = raw
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := parsePrice(s)
	if err != nil {
		p.Text = strings.TrimSpace(s)
		return nil
	}
	p.Decimal = d
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Numeric() {
		return json.Marshal(p.Text)
	}
	return json.Marshal(p.StringFixed(2))
}

func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("valor %q: %w", s, err)
	}
	return d, nil
}

// DecisionKind tags the outcome of routing a single message.
type DecisionKind string

const (
	DecisionForwarded      DecisionKind = "forwarded"
	DecisionRejectedClosed DecisionKind = "rejected_closed"
	DecisionRejectedTooFar DecisionKind = "rejected_too_far"
	DecisionPassThrough    DecisionKind = "pass_through"
)

// Decision is the terminal result of routing. Message is always set to the
// text a customer should see; Raw keeps the completion text. Malformed
// marks a pass-through caused by a structured reply that failed to parse.
type Decision struct {
	Kind      DecisionKind
	Order     *Order
	Address   *AddressOnly
	Verdict   *delivery.Verdict
	Message   string
	Raw       string
	Malformed bool
}

// Payload returns what gets forwarded downstream, or nil when nothing is.
func (d Decision) Payload() any {
	if d.Kind != DecisionForwarded {
		return nil
	}
	if d.Order != nil {
		return d.Order
	}
	if d.Address != nil {
		return d.Address
	}
	return nil
}
