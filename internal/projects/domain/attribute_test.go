package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestValue_JSONRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		wire string
	}{
		{"string", StringValue("software"), `"software"`},
		{"number", NumberValue(4.5), `4.5`},
		{"integer number", NumberValue(42), `42`},
		{"bool", BoolValue(true), `true`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.in)
			require.NoError(t, err)
			assert.JSONEq(t, tc.wire, string(data))

			var out Value
			require.NoError(t, json.Unmarshal(data, &out))
			assert.Equal(t, tc.in, out)
		})
	}
}

func TestValue_JSONRejectsNonScalars(t *testing.T) {
	for _, wire := range []string{`{"nested":true}`, `[1,2]`, `null`} {
		var v Value
		assert.Error(t, json.Unmarshal([]byte(wire), &v), "input %s", wire)
	}
}

func TestValue_ZeroFailsToMarshal(t *testing.T) {
	_, err := json.Marshal(Value{})
	assert.Error(t, err)

	_, err = bson.Marshal(bson.M{"value": Value{}})
	assert.Error(t, err)
}

func TestValue_BSONRoundTrip(t *testing.T) {
	type doc struct {
		Value Value `bson:"value"`
	}

	cases := []struct {
		name string
		in   Value
	}{
		{"string", StringValue("software")},
		{"number", NumberValue(7.25)},
		{"bool", BoolValue(false)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := bson.Marshal(doc{Value: tc.in})
			require.NoError(t, err)

			var out doc
			require.NoError(t, bson.Unmarshal(data, &out))
			assert.Equal(t, tc.in, out.Value)
		})
	}
}

func TestValue_BSONDecodesStoredIntegers(t *testing.T) {
	// Records written by other tooling may hold int32/int64 values;
	// they decode as numbers.
	data, err := bson.Marshal(bson.M{"value": int64(12)})
	require.NoError(t, err)

	var out struct {
		Value Value `bson:"value"`
	}
	require.NoError(t, bson.Unmarshal(data, &out))
	assert.Equal(t, NumberValue(12), out.Value)
}

func TestAttribute_Equality(t *testing.T) {
	a := Attribute{Key: "industry", Value: StringValue("software")}
	b := Attribute{Key: "industry", Value: StringValue("software")}
	c := Attribute{Key: "industry", Value: StringValue("robotics")}

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
