package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNumber(t *testing.T) {
	got, err := NormalizeNumber("+55 (11) 99999-8888")
	require.NoError(t, err)
	assert.Equal(t, "5511999998888", got)

	_, err = NormalizeNumber("12345")
	assert.ErrorIs(t, err, ErrInvalidNumber)

	_, err = NormalizeNumber("")
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestDeepLink(t *testing.T) {
	link, err := DeepLink("+55 11 99999-8888", "Olá! 2x Burger & batata")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511999998888?text="))
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Olá! 2x Burger & batata", u.Query().Get("text"))
}

func sampleOrder() Order {
	return Order{
		Code:           "ABC123",
		RestaurantName: "Casa do Burger",
		Type:           OrderDelivery,
		Lines: []OrderLine{
			{
				Name:     "Burger",
				Quantity: 2,
				Complements: []ComplementLine{
					{Group: "Size", Names: []string{"Large"}},
					{Group: "Extras", Names: nil},
				},
				Total: decimal.NewFromInt(50),
			},
		},
		Total: decimal.NewFromInt(50),
		Customer: Customer{
			Name:       "Ana",
			Address:    "Rua A",
			Number:     "10",
			Complement: "ap 2",
			WhatsApp:   "5511999998888",
		},
		Notes: "sem cebola",
	}
}

func TestBuildOrderMessage(t *testing.T) {
	msg := BuildOrderMessage(sampleOrder())

	assert.Contains(t, msg, "*Novo pedido - Casa do Burger*")
	assert.Contains(t, msg, "Pedido: #ABC123")
	assert.Contains(t, msg, "Tipo: Entrega")
	assert.Contains(t, msg, "2x Burger - R$ 50,00")
	assert.Contains(t, msg, "   Size: Large")
	assert.NotContains(t, msg, "Extras")
	assert.Contains(t, msg, "*Total: R$ 50,00*")
	assert.Contains(t, msg, "Endereço: Rua A, 10 - ap 2")
	assert.Contains(t, msg, "Observações: sem cebola")
	assert.False(t, strings.HasSuffix(msg, "\n"))
}

func TestBuildOrderMessage_Table(t *testing.T) {
	o := sampleOrder()
	o.Type = OrderTable
	o.Table = 7
	o.Customer = Customer{}

	msg := BuildOrderMessage(o)
	assert.Contains(t, msg, "Tipo: Mesa 7")
	assert.NotContains(t, msg, "Endereço")
	assert.NotContains(t, msg, "*Cliente:*")
}

func TestOrderValidate(t *testing.T) {
	o := sampleOrder()
	assert.NoError(t, o.Validate())

	o.Customer.Address = " "
	assert.ErrorIs(t, o.Validate(), ErrMissingAddress)

	o.Type = OrderPickup
	assert.NoError(t, o.Validate())

	o.Type = OrderTable
	assert.ErrorIs(t, o.Validate(), ErrMissingTable)

	o.Type = "drone"
	assert.ErrorIs(t, o.Validate(), ErrUnknownOrderType)

	o.Lines = nil
	assert.ErrorIs(t, o.Validate(), ErrEmptyOrder)
}

func TestNewOrderCode(t *testing.T) {
	a, b := NewOrderCode(), NewOrderCode()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, strings.ToUpper(a), a)
}
