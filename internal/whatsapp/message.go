package whatsapp

import (
	"errors"
	"fmt"
	"strings"

	"cardapio/internal/menu"

	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderDelivery OrderType = "delivery"
	OrderPickup   OrderType = "pickup"
	OrderTable    OrderType = "table"
)

var (
	ErrEmptyOrder       = errors.New("order has no items")
	ErrMissingAddress   = errors.New("delivery orders need an address")
	ErrMissingTable     = errors.New("table orders need a table number")
	ErrUnknownOrderType = errors.New("unknown order type")
)

type ComplementLine struct {
	Group string
	Names []string
}

type OrderLine struct {
	Name        string
	Quantity    int
	Complements []ComplementLine
	Total       decimal.Decimal
}

// Customer is the subset of the customer profile printed on an order.
type Customer struct {
	Name       string
	Address    string
	Number     string
	Complement string
	WhatsApp   string
}

type Order struct {
	Code           string
	RestaurantName string
	Type           OrderType
	Table          int
	Lines          []OrderLine
	Total          decimal.Decimal
	Customer       Customer
	Notes          string
}

// NewOrderCode returns a short code customers and staff can quote.
func NewOrderCode() string {
	return strings.ToUpper(cuid.Slug())
}

func (o *Order) Validate() error {
	if len(o.Lines) == 0 {
		return ErrEmptyOrder
	}

	switch o.Type {
	case OrderDelivery:
		if strings.TrimSpace(o.Customer.Address) == "" {
			return ErrMissingAddress
		}
	case OrderTable:
		if o.Table <= 0 {
			return ErrMissingTable
		}
	case OrderPickup:
	default:
		return ErrUnknownOrderType
	}

	return nil
}

func (t OrderType) label(table int) string {
	switch t {
	case OrderDelivery:
		return "Entrega"
	case OrderPickup:
		return "Retirada no local"
	case OrderTable:
		return fmt.Sprintf("Mesa %d", table)
	}
	return string(t)
}

// BuildOrderMessage renders the order as the text sent to the restaurant.
func BuildOrderMessage(o Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Novo pedido - %s*\n", o.RestaurantName)
	if o.Code != "" {
		fmt.Fprintf(&b, "Pedido: #%s\n", o.Code)
	}
	fmt.Fprintf(&b, "Tipo: %s\n\n", o.Type.label(o.Table))

	b.WriteString("*Itens:*\n")
	for _, line := range o.Lines {
		fmt.Fprintf(&b, "%dx %s - %s\n", line.Quantity, line.Name, menu.FormatPrice(line.Total))
		for _, c := range line.Complements {
			if len(c.Names) == 0 {
				continue
			}
			fmt.Fprintf(&b, "   %s: %s\n", c.Group, strings.Join(c.Names, ", "))
		}
	}

	fmt.Fprintf(&b, "\n*Total: %s*\n", menu.FormatPrice(o.Total))

	c := o.Customer
	if c.Name != "" || c.WhatsApp != "" || o.Type == OrderDelivery {
		b.WriteString("\n*Cliente:*\n")
		if c.Name != "" {
			fmt.Fprintf(&b, "Nome: %s\n", c.Name)
		}
		if c.WhatsApp != "" {
			fmt.Fprintf(&b, "WhatsApp: %s\n", c.WhatsApp)
		}
		if o.Type == OrderDelivery {
			addr := c.Address
			if c.Number != "" {
				addr += ", " + c.Number
			}
			if c.Complement != "" {
				addr += " - " + c.Complement
			}
			fmt.Fprintf(&b, "Endereço: %s\n", addr)
		}
	}

	if notes := strings.TrimSpace(o.Notes); notes != "" {
		fmt.Fprintf(&b, "\nObservações: %s\n", notes)
	}

	return strings.TrimRight(b.String(), "\n")
}
