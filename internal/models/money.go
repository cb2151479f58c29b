package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money 统一金额类型（保留 2 位小数）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// NewMoney 从浮点数创建金额
func NewMoney(amount float64) Money {
	return NewMoneyFromDecimal(decimal.NewFromFloat(amount))
}

// ParseMoney 宽松解析请求中的金额，支持数字与数字字符串
func ParseMoney(value interface{}) (Money, bool) {
	switch v := value.(type) {
	case nil:
		return Money{}, false
	case float64:
		return NewMoney(v), true
	case float32:
		return NewMoney(float64(v)), true
	case int:
		return NewMoneyFromDecimal(decimal.NewFromInt(int64(v))), true
	case int64:
		return NewMoneyFromDecimal(decimal.NewFromInt(v)), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return Money{}, false
		}
		return NewMoneyFromDecimal(d), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return Money{}, false
		}
		return NewMoneyFromDecimal(d), true
	default:
		return Money{}, false
	}
}

// MarshalJSON 输出数字字面量
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.Round(2).String()), nil
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	var raw interface{}
	decoder := json.NewDecoder(strings.NewReader(string(b)))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return err
	}
	parsed, ok := ParseMoney(raw)
	if !ok {
		return fmt.Errorf("invalid money value: %s", string(b))
	}
	*m = parsed
	return nil
}

// MarshalBSONValue 以 Decimal128 写入 MongoDB
func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d, err := primitive.ParseDecimal128(m.Decimal.Round(2).StringFixed(2))
	if err != nil {
		return 0, nil, err
	}
	return bson.MarshalValue(d)
}

// UnmarshalBSONValue 兼容 Decimal128、double、int 与字符串
func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeDecimal128:
		d, err := decimal.NewFromString(raw.Decimal128().String())
		if err != nil {
			return err
		}
		*m = NewMoneyFromDecimal(d)
	case bson.TypeDouble:
		*m = NewMoney(raw.Double())
	case bson.TypeInt32:
		*m = NewMoneyFromDecimal(decimal.NewFromInt32(raw.Int32()))
	case bson.TypeInt64:
		*m = NewMoneyFromDecimal(decimal.NewFromInt(raw.Int64()))
	case bson.TypeString:
		parsed, ok := ParseMoney(raw.StringValue())
		if !ok {
			return fmt.Errorf("invalid money value: %q", raw.StringValue())
		}
		*m = parsed
	case bson.TypeNull, bson.TypeUndefined:
		*m = Money{}
	default:
		return fmt.Errorf("cannot decode %s into Money", t)
	}
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
