package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
		want  string
	}{
		{name: "with unit", raw: "1.5 ETH", valid: true, want: "1.5"},
		{name: "with rate unit", raw: "0.15 ETH/month", valid: true, want: "0.15"},
		{name: "percent", raw: "95%", valid: true, want: "95"},
		{name: "bare number", raw: "2.0", valid: true, want: "2.0"},
		{name: "surrounding spaces", raw: "  3 ETH ", valid: true, want: "3"},
		{name: "negative", raw: "-0.5", valid: true, want: "-0.5"},
		{name: "empty", raw: "", valid: false},
		{name: "only spaces", raw: "   ", valid: false},
		{name: "garbage", raw: "abc ETH", valid: false},
		{name: "unit first", raw: "ETH 1.5", valid: false},
		{name: "NaN", raw: "NaN", valid: false},
		{name: "infinity", raw: "Infinity ETH", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ParseAmount(tt.raw)
			assert.Equal(t, tt.raw, a.Raw, "raw text must be preserved")
			require.Equal(t, tt.valid, a.Valid())
			if tt.valid {
				assert.Equal(t, tt.want, a.Value.String())
			}
		})
	}
}

func TestAmount_Cmp(t *testing.T) {
	assert.Equal(t, -1, MustAmount("1.5 ETH").Cmp(MustAmount("2")))
	assert.Equal(t, 0, MustAmount("2.0 ETH").Cmp(MustAmount("2")))
	assert.Equal(t, 1, MustAmount("0.3").Cmp(MustAmount("0.25 ETH/month")))
}

func TestAmount_Decimal(t *testing.T) {
	d := MustAmount("0.2 ETH").Decimal()
	assert.Equal(t, "0.2", d.String())

	zero := ParseAmount("n/a").Decimal()
	assert.True(t, zero.IsZero())
}

func TestAmount_Clone(t *testing.T) {
	a := MustAmount("1.5 ETH")
	b := a.Clone()
	require.NotSame(t, a.Value, b.Value)

	b.Value.SetInt64(7)
	assert.Equal(t, "1.5", a.Value.String())
	assert.Equal(t, "1.5 ETH", b.Raw)

	broken := ParseAmount("TBA").Clone()
	assert.False(t, broken.Valid())
	assert.Equal(t, "TBA", broken.Raw)
}

func TestMustAmount_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustAmount("not a number") })
}

func TestAmount_JSON(t *testing.T) {
	t.Run("decode string and number", func(t *testing.T) {
		var got struct {
			Price   Amount `json:"price"`
			Revenue Amount `json:"revenue"`
			Broken  Amount `json:"broken"`
		}
		err := json.Unmarshal([]byte(`{"price":"1.5 ETH","revenue":0.15,"broken":"soon"}`), &got)
		require.NoError(t, err)

		assert.Equal(t, "1.5 ETH", got.Price.Raw)
		assert.Equal(t, "1.5", got.Price.Value.String())
		assert.Equal(t, "0.15", got.Revenue.Raw)
		assert.True(t, got.Revenue.Valid())
		assert.False(t, got.Broken.Valid())
	})

	t.Run("reject objects", func(t *testing.T) {
		var a Amount
		err := json.Unmarshal([]byte(`{"v":1}`), &a)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount must be a string or number")
	})

	t.Run("encode raw text", func(t *testing.T) {
		data, err := json.Marshal(MustAmount("0.2 ETH/month"))
		require.NoError(t, err)
		assert.JSONEq(t, `"0.2 ETH/month"`, string(data))
	})
}

func TestAmount_YAML(t *testing.T) {
	var got struct {
		Price       Amount `yaml:"price"`
		Utilization Amount `yaml:"utilization"`
	}
	err := yaml.Unmarshal([]byte("price: 2.0 ETH\nutilization: 90%\n"), &got)
	require.NoError(t, err)

	assert.Equal(t, "2.0 ETH", got.Price.Raw)
	assert.Equal(t, "90", got.Utilization.Value.String())

	var bad struct {
		Price Amount `yaml:"price"`
	}
	err = yaml.Unmarshal([]byte("price: [1, 2]\n"), &bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be a scalar")
}
