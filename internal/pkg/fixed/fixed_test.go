package fixed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Decimal
	}{
		{"20", 2000},
		{"20.5", 2050},
		{"20.50", 2050},
		{"0.05", 5},
		{".5", 50},
		{"-3.25", -325},
		{"+1", 100},
		{" 7.10 ", 710},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "-", ".", "1.", "1.234", "abc", "1.x", "--1"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidDecimal, in)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "0.00", Decimal(0).String())
	assert.Equal(t, "0.05", Decimal(5).String())
	assert.Equal(t, "37.50", Decimal(3750).String())
	assert.Equal(t, "-1.05", Decimal(-105).String())
}

func TestMulFrac_RoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, Decimal(3750), FromInt(25).MulFrac(90, 60))
	assert.Equal(t, Decimal(333), FromInt(10).MulFrac(20, 60))
	assert.Equal(t, Decimal(833), FromInt(10).MulFrac(50, 60))
	assert.Equal(t, Decimal(3), Decimal(5).MulFrac(30, 60))
	assert.Equal(t, Decimal(-3), Decimal(-5).MulFrac(30, 60))
	assert.Panics(t, func() { Decimal(1).MulFrac(1, 0) })
}

func TestMul(t *testing.T) {
	assert.Equal(t, "20.00", FromInt(20).Mul(FromInt(1)).String())
	assert.Equal(t, "37.50", FromInt(25).Mul(FromCents(150)).String())
	assert.Equal(t, "0.03", FromCents(5).Mul(FromCents(50)).String())
	assert.Equal(t, "-0.03", FromCents(-5).Mul(FromCents(50)).String())
	assert.Equal(t, "0.00", FromInt(20).Mul(0).String())
}

func TestAverage(t *testing.T) {
	assert.Equal(t, Decimal(0), Average(10, 0))
	assert.Equal(t, Decimal(300), Average(6, 2))
	assert.Equal(t, Decimal(467), Average(14, 3))
	assert.Equal(t, Decimal(433), Average(13, 3))
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Price Decimal `json:"price"`
	}{Price: 2050})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":20.50}`, string(b))

	var v struct {
		A Decimal `json:"a"`
		B Decimal `json:"b"`
		C Decimal `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":20.5,"b":"3.25","c":null}`), &v))
	assert.Equal(t, Decimal(2050), v.A)
	assert.Equal(t, Decimal(325), v.B)
	assert.Equal(t, Decimal(0), v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":1.234}`), &v))
}
