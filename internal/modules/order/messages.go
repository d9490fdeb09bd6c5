// README: Customer-facing texts for routing outcomes.
package order

import (
	"fmt"
	"strconv"
	"strings"

	"pedidos/internal/modules/delivery"
)

type Messages struct {
	StoreName string
	Hours     Hours
	MaxMeters int
}

func (m Messages) Closed() string {
	return fmt.Sprintf("🍕 A %s está fechada no momento. Funcionamos %s. "+
		"Se preferir, você pode agendar o seu pedido: é só escrever na observação "+
		"\"agendado para\" e o horário desejado.\n"+
		"(EN) %s is closed right now. Opening hours: %s. To schedule an order, "+
		"write \"agendado para\" and the desired time in the note.",
		m.StoreName, m.Hours.Describe(), m.StoreName, m.Hours.DescribeEN())
}

func (m Messages) TooFar(v delivery.Verdict) string {
	return fmt.Sprintf("🚫 Infelizmente não entregamos nesse endereço. A distância até você é de %s "+
		"e o nosso limite de entrega é de %s.", v.DistanceLabel, FormatKm(m.MaxMeters))
}

func (m Messages) Confirmed(o Order, v delivery.Verdict) string {
	var b strings.Builder
	b.WriteString("✅ Pedido")
	if o.OrderNumber != nil {
		fmt.Fprintf(&b, " #%04d", *o.OrderNumber)
	}
	fmt.Fprintf(&b, " confirmado! %dx %s para %s (%s).", int(o.Quantity), o.Product, o.Address, v.DistanceLabel)
	if o.Price != nil && o.Price.Numeric() {
		fmt.Fprintf(&b, " Total: R$ %s.", strings.Replace(o.Price.StringFixed(2), ".", ",", 1))
	}
	fmt.Fprintf(&b, " Registrado em %s. Obrigado, %s!", o.Timestamp, o.Name)
	return b.String()
}

func (m Messages) AddressReceived(a AddressOnly) string {
	return fmt.Sprintf("📍 Endereço recebido: %s", a.Address)
}

// FormatKm renders meters as kilometres with a decimal comma: 10000 -> "10 km".
func FormatKm(meters int) string {
	km := strconv.FormatFloat(float64(meters)/1000, 'f', -1, 64)
	return strings.Replace(km, ".", ",", 1) + " km"
}
