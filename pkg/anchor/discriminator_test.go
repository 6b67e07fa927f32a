package anchor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInstructionDiscriminator_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		hex  string
	}{
		{"buy", "66063d1201daebea"},
		{"sell", "33e685a4017f83ad"},
		{"create", "181ec828051c0777"},
		{"set_params", "1beab2349302bb8d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hex, ComputeInstructionDiscriminator(tt.name).String())
		})
	}
}

func TestPumpFunIDL_SetParamsDiscriminatorMatchesHash(t *testing.T) {
	inst, err := PumpFunIDL.GetInstruction("setParams")
	require.NoError(t, err)

	d, err := inst.InstructionDiscriminator()
	require.NoError(t, err)
	assert.Equal(t, ComputeInstructionDiscriminator("set_params"), d)
}

func TestComputeAccountDiscriminator_BondingCurve(t *testing.T) {
	want, err := DiscriminatorFromHex("17b7f83760d8ac60")
	require.NoError(t, err)
	assert.Equal(t, want, BondingCurveDiscriminator)
}

func TestComputeInstructionDiscriminator_Deterministic(t *testing.T) {
	names := []string{"", "test_instruction", "buy", "a very long instruction name with spaces", "ünïcødé"}
	for i := 0; i < 50; i++ {
		names = append(names, fmt.Sprintf("instruction_%d", i))
	}

	for _, name := range names {
		first := ComputeInstructionDiscriminator(name)
		second := ComputeInstructionDiscriminator(name)
		assert.Equal(t, first, second, name)
		assert.Len(t, first.Bytes(), DiscriminatorSize, name)
	}
}

func TestComputeInstructionDiscriminator_Namespaced(t *testing.T) {
	assert.NotEqual(t, ComputeInstructionDiscriminator("BondingCurve"), ComputeAccountDiscriminator("BondingCurve"))
}

func TestDiscriminatorFromBytes(t *testing.T) {
	_, err := DiscriminatorFromBytes([]byte{1, 2, 3})
	assert.Error(t, err)

	d, err := DiscriminatorFromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(t, err)
	assert.Equal(t, Discriminator{1, 2, 3, 4, 5, 6, 7, 8}, d)
}

func TestDiscriminatorFromHex_Invalid(t *testing.T) {
	_, err := DiscriminatorFromHex("zz")
	assert.Error(t, err)

	_, err = DiscriminatorFromHex("0102")
	assert.Error(t, err)
}

func TestDiscriminator_Matches(t *testing.T) {
	data := append(BuyDiscriminator.Bytes(), 0xff, 0xee)
	assert.True(t, BuyDiscriminator.Matches(data))
	assert.False(t, SellDiscriminator.Matches(data))
	assert.False(t, BuyDiscriminator.Matches(data[:7]))
}
