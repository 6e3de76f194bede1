package types

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Amount is a decimal quantity as it appears in a listing, e.g. "1.5 ETH",
// "0.15 ETH/month" or "95%". The raw text is kept for display; Value is nil
// when the text does not hold a finite number.
type Amount struct {
	Raw   string
	Value *apd.Decimal
}

// ParseAmount never fails. Only the leading token is numeric, anything after
// the first space is treated as a unit suffix.
func ParseAmount(raw string) Amount {
	return Amount{Raw: raw, Value: parseDecimal(raw)}
}

// MustAmount is ParseAmount for literals known to be valid
func MustAmount(raw string) Amount {
	a := ParseAmount(raw)
	if a.Value == nil {
		panic("invalid amount literal: " + raw)
	}
	return a
}

func parseDecimal(raw string) *apd.Decimal {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}
	token := strings.TrimSuffix(fields[0], "%")

	value, _, err := apd.NewFromString(token)
	if err != nil || value.Form != apd.Finite {
		return nil
	}
	return value
}

// Valid reports whether the amount holds a parsable number
func (a Amount) Valid() bool {
	return a.Value != nil
}

// Cmp compares two amounts numerically. Both must be valid.
func (a Amount) Cmp(b Amount) int {
	return a.Value.Cmp(b.Value)
}

func (a Amount) String() string {
	return a.Raw
}

// Decimal returns a copy of the parsed value, or zero if the amount is invalid
func (a Amount) Decimal() apd.Decimal {
	var d apd.Decimal
	if a.Value != nil {
		d.Set(a.Value)
	}
	return d
}

// Clone returns an amount that shares no memory with a
func (a Amount) Clone() Amount {
	if a.Value == nil {
		return Amount{Raw: a.Raw}
	}
	d := a.Decimal()
	return Amount{Raw: a.Raw, Value: &d}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Raw)
}

// UnmarshalJSON accepts both `"1.5 ETH"` and `1.5`
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = ParseAmount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrapf(err, "amount must be a string or number, got %s", string(data))
	}
	*a = ParseAmount(n.String())
	return nil
}

func (a Amount) MarshalYAML() (interface{}, error) {
	return a.Raw, nil
}

func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.Errorf("amount must be a scalar, line %d", value.Line)
	}
	*a = ParseAmount(value.Value)
	return nil
}
