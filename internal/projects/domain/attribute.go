package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// ValueKind discriminates the scalar types an attribute value may hold.
type ValueKind int

const (
	KindString ValueKind = iota + 1
	KindNumber
	KindBool
)

var errEmptyValue = errors.New("empty attribute value")

// Value is a scalar attribute value: a string, a number or a bool.
// Persisted values must round-trip through BSON and JSON, so the set of
// types is closed. The zero Value is invalid and fails to marshal.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }

func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsZero() bool { return v.kind == 0 }

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	}
	return nil, errEmptyValue
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*v = StringValue(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return fmt.Errorf("attribute value: %w", err)
		}
		*v = NumberValue(f)
	case bool:
		*v = BoolValue(t)
	default:
		return fmt.Errorf("attribute value must be a string, number or bool")
	}
	return nil
}

func (v Value) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch v.kind {
	case KindString:
		return bsontype.String, bsoncore.AppendString(nil, v.str), nil
	case KindNumber:
		return bsontype.Double, bsoncore.AppendDouble(nil, v.num), nil
	case KindBool:
		return bsontype.Boolean, bsoncore.AppendBoolean(nil, v.b), nil
	}
	return bsontype.Type(0), nil, errEmptyValue
}

func (v *Value) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("attribute value: malformed bson string")
		}
		*v = StringValue(s)
	case bsontype.Double:
		f, _, ok := bsoncore.ReadDouble(data)
		if !ok {
			return fmt.Errorf("attribute value: malformed bson double")
		}
		*v = NumberValue(f)
	case bsontype.Int32:
		i, _, ok := bsoncore.ReadInt32(data)
		if !ok {
			return fmt.Errorf("attribute value: malformed bson int32")
		}
		*v = NumberValue(float64(i))
	case bsontype.Int64:
		i, _, ok := bsoncore.ReadInt64(data)
		if !ok {
			return fmt.Errorf("attribute value: malformed bson int64")
		}
		*v = NumberValue(float64(i))
	case bsontype.Boolean:
		b, _, ok := bsoncore.ReadBoolean(data)
		if !ok {
			return fmt.Errorf("attribute value: malformed bson boolean")
		}
		*v = BoolValue(b)
	default:
		return fmt.Errorf("attribute value: unsupported bson type %s", t)
	}
	return nil
}

// Attribute is a key/value pair describing or required by a Project.
// Attributes form a set by full key+value equality: two attributes with
// the same key but different values may coexist.
type Attribute struct {
	Key   string `bson:"key" json:"key"`
	Value Value  `bson:"value" json:"value"`
}
