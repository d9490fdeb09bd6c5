// README: Classifies raw completion text as a complete order, an address-only reply or free text.
package order

import (
	"encoding/json"
	"strings"
)

// requiredKeys are the fields an order must carry to count as complete.
var requiredKeys = []string{"nome", "produto", "quantidade", "pagamento", "endereco", "telefone"}

var addressKeys = []string{"endereco", "address"}

// Classifier decides which shape a completion reply has. Classification
// first tries a strict JSON parse and checks fields on the parsed object.
//
// With SubstringFallback set, text that is not a usable JSON object but
// still contains every quoted required key (e.g. `"nome"`) is reported as
// Complete. This keeps compatibility with the storefront's historical
// behavior; the parser will then fail with ErrMalformed and the reply is
// passed through.
type Classifier struct {
	SubstringFallback bool
}

func (c Classifier) Classify(text string) Classification {
	if fields, ok := decodeObject(cleanJSONString(text)); ok {
		if hasRequiredFields(fields) {
			return ClassComplete
		}
		if isAddressOnly(fields) {
			return ClassAddressOnly
		}
	}
	if c.SubstringFallback && containsAllMarkers(text) {
		return ClassComplete
	}
	return ClassUnstructured
}

func decodeObject(body string) (map[string]json.RawMessage, bool) {
	if !strings.HasPrefix(body, "{") {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func hasRequiredFields(fields map[string]json.RawMessage) bool {
	for _, k := range requiredKeys {
		v, ok := fields[k]
		if !ok || !nonEmpty(v) {
			return false
		}
	}
	return true
}

func isAddressOnly(fields map[string]json.RawMessage) bool {
	if len(fields) != 1 {
		return false
	}
	for _, k := range addressKeys {
		v, ok := fields[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return false
		}
		return strings.TrimSpace(s) != ""
	}
	return false
}

func nonEmpty(v json.RawMessage) bool {
	raw := strings.TrimSpace(string(v))
	switch {
	case raw == "" || raw == "null":
		return false
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return false
		}
		return strings.TrimSpace(s) != ""
	default:
		// numbers only; objects, arrays and booleans never decode into an order field
		return isJSONNumber(raw)
	}
}

func containsAllMarkers(text string) bool {
	for _, k := range requiredKeys {
		if !strings.Contains(text, `"`+k+`"`) {
			return false
		}
	}
	return true
}

// cleanJSONString removes markdown code fences if present (e.g. ```json ... ```).
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
