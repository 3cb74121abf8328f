package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "brazilian with currency symbol", in: "R$ 1.200,50", want: "1200.5"},
		{name: "brazilian plain", in: "19,90", want: "19.9"},
		{name: "plain decimal", in: "19.90", want: "19.9"},
		{name: "integer", in: "100", want: "100"},
		{name: "thousands only", in: "1.200,00", want: "1200"},
		{name: "negative", in: "-5,50", want: "-5.5"},
		{name: "surrounding spaces", in: "  R$ 42,07 ", want: "42.07"},
		{name: "empty", in: "", want: "0"},
		{name: "garbage", in: "abc", want: "0"},
		{name: "partially numeric", in: "12abc", want: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tc.want)
			assert.NoError(t, err)
			got := Parse(tc.in)
			assert.True(t, got.Equal(want), "Parse(%q) = %s, want %s", tc.in, got, want)
		})
	}
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, "10.01", Round(decimal.RequireFromString("10.005")).StringFixed(2))
	assert.Equal(t, "10.00", Round(decimal.RequireFromString("10.004")).StringFixed(2))
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, "19.90", FromFloat(19.9).StringFixed(2))
}
