package order

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CompleteOrder(t *testing.T) {
	p, err := Parse(completeReply, ClassComplete)
	require.NoError(t, err)
	require.NotNil(t, p.Order)
	assert.Nil(t, p.Address)

	o := p.Order
	assert.Equal(t, "Ana #1234", o.Name)
	assert.Equal(t, "Pizza Calabresa", o.Product)
	assert.Equal(t, Quantity(2), o.Quantity)
	assert.Equal(t, "Pix", o.Payment)
	assert.Equal(t, "Rua Augusta, 500", o.Address)
	assert.Equal(t, "11988887777", o.Phone)
	assert.Equal(t, "sem cebola", o.Note)
	require.NotNil(t, o.Price)
	assert.Equal(t, "89.90", o.Price.StringFixed(2))
	assert.Nil(t, o.OrderNumber, "order number is only set by enrichment")
}

func TestParse_FieldCoercion(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		price     string
		wantQty   Quantity
		wantPrice string
	}{
		{name: "numeric string quantity", quantity: `"3"`, price: `45.5`, wantQty: 3, wantPrice: "45.50"},
		{name: "integral float quantity", quantity: `2.0`, price: `"45,90"`, wantQty: 2, wantPrice: "45.90"},
		{name: "brazilian thousands", quantity: `1`, price: `"R$ 1.234,50"`, wantQty: 1, wantPrice: "1234.50"},
		{name: "plain decimal string", quantity: `1`, price: `"39.00"`, wantQty: 1, wantPrice: "39.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := `{"nome":"Ana","produto":"Pizza","quantidade":` + tt.quantity +
				`,"pagamento":"Pix","endereco":"Rua A","telefone":"1199","valor":` + tt.price + `}`
			p, err := Parse(text, ClassComplete)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQty, p.Order.Quantity)
			require.NotNil(t, p.Order.Price)
			assert.Equal(t, tt.wantPrice, p.Order.Price.StringFixed(2))
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "truncated", text: `{"nome":"Ana","produto":"Pizza","quantidade":1,"pagamento":"Pix","endereco":"Rua A","telefone":"11`},
		{name: "blank name", text: `{"nome":" ","produto":"Pizza","quantidade":1,"pagamento":"Pix","endereco":"Rua A","telefone":"1199"}`},
		{name: "zero quantity", text: `{"nome":"Ana","produto":"Pizza","quantidade":0,"pagamento":"Pix","endereco":"Rua A","telefone":"1199"}`},
		{name: "fractional quantity", text: `{"nome":"Ana","produto":"Pizza","quantidade":1.5,"pagamento":"Pix","endereco":"Rua A","telefone":"1199"}`},
		{name: "huge float quantity", text: `{"nome":"Ana","produto":"Pizza","quantidade":1e30,"pagamento":"Pix","endereco":"Rua A","telefone":"1199"}`},
		{name: "object phone", text: `{"nome":"Ana","produto":"Pizza","quantidade":1,"pagamento":"Pix","endereco":"Rua A","telefone":{"ddd":11}}`},
		{name: "prose", text: `Preciso de "nome", "produto", "quantidade", "pagamento", "endereco" e "telefone".`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, ClassComplete)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParse_AddressOnly(t *testing.T) {
	p, err := Parse("```json\n{\"endereco\": \" Av. Paulista, 1000 \"}\n```", ClassAddressOnly)
	require.NoError(t, err)
	require.NotNil(t, p.Address)
	assert.Nil(t, p.Order)
	assert.Equal(t, "Av. Paulista, 1000", p.Address.Address)

	_, err = Parse(`{"endereco":"Rua A","nome":"Ana"}`, ClassAddressOnly)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParse_Unstructured(t *testing.T) {
	_, err := Parse("Olá!", ClassUnstructured)
	assert.ErrorIs(t, err, ErrUnstructured)
}

func TestParse_Idempotent(t *testing.T) {
	c := Classifier{}.Classify(completeReply)
	first, err := Parse(completeReply, c)
	require.NoError(t, err)
	second, err := Parse(completeReply, Classifier{}.Classify(completeReply))
	require.NoError(t, err)
	assert.Equal(t, first.Order, second.Order)
}

func TestValidateDirect(t *testing.T) {
	d := DirectOrder{
		Name:          " Ana ",
		Address:       "Rua A",
		Phone:         "1199",
		Items:         "1 pizza",
		PaymentMethod: "Pix",
	}
	require.NoError(t, ValidateDirect(&d))
	assert.Equal(t, "Ana", d.Name)

	d.PaymentMethod = "  "
	assert.Error(t, ValidateDirect(&d))
}

func TestOrder_MarshalJSON(t *testing.T) {
	n := 7
	price := Price{}
	require.NoError(t, json.Unmarshal([]byte(`"R$ 50"`), &price))
	o := Order{
		Name: "Ana #0007", Product: "Pizza", Quantity: 1, Payment: "Pix",
		Address: "Rua A", Phone: "1199", Price: &price,
		Timestamp: "18:30 - 21/10/26", OrderNumber: &n,
	}
	b, err := json.Marshal(o)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "50.00", got["valor"])
	assert.Equal(t, float64(7), got["numero_pedido"])
	assert.Equal(t, "18:30 - 21/10/26", got["datahora"])
	assert.NotContains(t, got, "observacao")
}

func TestParse_PriceThatIsNotAnAmount(t *testing.T) {
	for _, valor := range []string{`"a combinar"`, `"R$ 45,00 + entrega"`} {
		text := `{"nome":"Ana","produto":"Pizza","quantidade":1,"pagamento":"Pix","endereco":"Rua A","telefone":"1199","valor":` + valor + `}`
		require.Equal(t, ClassComplete, Classifier{}.Classify(text))

		p, err := Parse(text, ClassComplete)
		require.NoError(t, err, valor)
		require.NotNil(t, p.Order.Price)
		assert.False(t, p.Order.Price.Numeric())
		assert.True(t, p.Order.Price.IsZero())

		b, err := json.Marshal(p.Order)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(b, &got))
		var want string
		require.NoError(t, json.Unmarshal([]byte(valor), &want))
		assert.Equal(t, want, got["valor"])
	}
}

func TestParse_NumericTextFields(t *testing.T) {
	text := `{"nome":"Ana","produto":"Pizza","quantidade":1,"pagamento":"Pix","endereco":"Rua A, 12","telefone":11988887777,"observacao":42}`
	require.Equal(t, ClassComplete, Classifier{}.Classify(text))

	p, err := Parse(text, ClassComplete)
	require.NoError(t, err)
	assert.Equal(t, "11988887777", p.Order.Phone)
	assert.Equal(t, "42", p.Order.Note)
}

func TestQuantity_OutOfRange(t *testing.T) {
	var q Quantity
	assert.Error(t, json.Unmarshal([]byte(`1e30`), &q))
	assert.Error(t, json.Unmarshal([]byte(`"-1e20"`), &q))
	require.NoError(t, json.Unmarshal([]byte(`3e2`), &q))
	assert.Equal(t, Quantity(300), q)
}
