// Package money holds the fixed-point amount used for car prices and
// booking totals. Car prices are stored as numeric(8,2), booking totals as
// numeric(12,2), and both are serialised as decimal strings with two places.
package money

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
)

// Scale is the number of decimal places kept for every amount.
const Scale = 2

var decCtx = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(20)
	c.Rounding = apd.RoundHalfEven
	return c
}()

var ErrInvalid = errors.New("invalid amount")

type Money struct {
	d apd.Decimal
}

func Zero() Money {
	return FromInt(0)
}

func FromInt(v int64) Money {
	var m Money
	m.d.SetInt64(v)
	m.quantize()
	return m
}

// Parse accepts plain decimal notation ("80", "49.90"). Amounts with more
// than two decimal places are rounded half-even.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalid
	}
	d, _, err := apd.NewFromString(s)
	if err != nil || d.Form != apd.Finite {
		return Money{}, errors.Wrapf(ErrInvalid, "parse %q", s)
	}
	m := Money{d: *d}
	m.quantize()
	return m, nil
}

func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Money) quantize() {
	if _, err := decCtx.Quantize(&m.d, &m.d, -Scale); err != nil {
		panic(errors.Wrap(err, "quantize amount"))
	}
}

// MulInt returns m × n.
func (m Money) MulInt(n int64) Money {
	var out Money
	if _, err := decCtx.Mul(&out.d, &m.d, apd.New(n, 0)); err != nil {
		panic(errors.Wrap(err, "multiply amount"))
	}
	out.quantize()
	return out
}

func (m Money) Sign() int {
	return m.d.Sign()
}

func (m Money) IsNegative() bool {
	return m.d.Sign() < 0
}

func (m Money) Cmp(o Money) int {
	return m.d.Cmp(&o.d)
}

func (m Money) Equal(o Money) bool {
	return m.Cmp(o) == 0
}

func (m Money) String() string {
	if m.d.Form != apd.Finite {
		return "0.00"
	}
	c := m
	c.quantize()
	return c.d.Text('f')
}

func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *Money) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		*m = Zero()
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return errors.Newf("money: cannot scan %T", src)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// bare JSON numbers are accepted as well
		s = string(b)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
