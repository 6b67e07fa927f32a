package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionBuilder_Layout(t *testing.T) {
	data := NewInstructionBuilder("buy").AddU64(0x0102030405060708).AddBool(true).Build()

	require.Len(t, data, 17)
	assert.Equal(t, BuyDiscriminator.Bytes(), data[:8])
	assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, data[8:16])
	assert.Equal(t, byte(1), data[16])
}

func TestReader_RoundTrip(t *testing.T) {
	data := NewInstructionBuilder("sell").AddU64(42).AddU64(7).AddBool(false).Build()

	r := NewReader(data)
	a, err := r.ReadU64()
	require.NoError(t, err)
	b, err := r.ReadU64()
	require.NoError(t, err)
	flag, err := r.ReadBool()
	require.NoError(t, err)

	assert.Equal(t, uint64(42), a)
	assert.Equal(t, uint64(7), b)
	assert.False(t, flag)
	assert.Equal(t, 0, r.Remaining())

	_, err = r.ReadU64()
	assert.Error(t, err)
	_, err = r.ReadBool()
	assert.Error(t, err)
}

func TestReader_ShortBuffer(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	assert.Equal(t, 0, r.Remaining())
	_, err := r.ReadU64()
	assert.Error(t, err)
}
