package menu

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"20,00", "20"},
		{"5,50", "5.5"},
		{"1.234,50", "1234.5"},
		{"R$ 12,90", "12.9"},
		{"20.00", "20"},
		{"0", "0"},
		{" 7 ", "7"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePrice(tc.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestParsePrice_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-1,00", "R$"} {
		_, err := ParsePrice(in)
		assert.ErrorIs(t, err, ErrInvalidPrice, in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "R$ 25,00", FormatPrice(decimal.NewFromInt(25)))
	assert.Equal(t, "R$ 1.234,50", FormatPrice(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "R$ 0,00", FormatPrice(decimal.Zero))
	assert.Equal(t, "R$ 1.000.000,00", FormatPrice(decimal.NewFromInt(1000000)))
	assert.Equal(t, "-R$ 3,10", FormatPrice(decimal.RequireFromString("-3.1")))
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "1234,50", FormatDecimal(decimal.RequireFromString("1234.5")))
}
