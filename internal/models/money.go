package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Money is a fixed-point decimal amount. It is stored in BSON as a string so
// prices and totals never pick up binary-float rounding, while legacy
// documents holding doubles or integers still decode.
type Money struct {
	decimal.Decimal
}

func MoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q", value)
	}
	return Money{d}, nil
}

func MoneyFromFloat(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// SumMoney adds the given amounts. An empty slice sums to zero.
func SumMoney(amounts []Money) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.Decimal)
	}
	return Money{total}
}

func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(m.Decimal.String())
}

// UnmarshalBSONValue accepts string, double and integer BSON values so money
// fields written before the string codec still load.
func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		m.Decimal = decimal.Zero
		return nil
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			return err
		}
		m.Decimal = d
		return nil
	case bsontype.Double:
		var value float64
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		m.Decimal = decimal.NewFromFloat(value)
		return nil
	case bsontype.Int32:
		var value int32
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		m.Decimal = decimal.NewFromInt32(value)
		return nil
	case bsontype.Int64:
		var value int64
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		m.Decimal = decimal.NewFromInt(value)
		return nil
	default:
		return fmt.Errorf("cannot decode %s into Money", t)
	}
}
