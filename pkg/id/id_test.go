package id_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ryob/pkg/id"
)

type widget struct{}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		v, err := id.Parse[widget]("42")
		require.NoError(t, err)
		assert.Equal(t, id.New[widget](42), v)
		assert.Equal(t, "42", v.String())
		assert.Equal(t, int64(42), v.Int64())
	})

	for _, in := range []string{"", "abc", "0", "-3", "1.5"} {
		t.Run("rejects "+in, func(t *testing.T) {
			t.Parallel()

			_, err := id.Parse[widget](in)
			require.ErrorIs(t, err, id.ErrInvalid)
		})
	}
}

func TestIDScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  any
		want int64
	}{
		{"int64", int64(7), 7},
		{"int32", int32(8), 8},
		{"bytes", []byte("9"), 9},
		{"string", "10", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var v id.ID[widget]
			require.NoError(t, v.Scan(tt.src))
			assert.Equal(t, tt.want, v.Int64())
		})
	}

	t.Run("nil is rejected", func(t *testing.T) {
		t.Parallel()

		var v id.ID[widget]
		require.ErrorIs(t, v.Scan(nil), id.ErrInvalid)
	})
}

func TestIDValueAndJSON(t *testing.T) {
	t.Parallel()

	v := id.New[widget](123)

	dv, err := v.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(123), dv)
	assert.False(t, v.IsZero())

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, "123", string(data))

	var back id.ID[widget]
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, v, back)
}
