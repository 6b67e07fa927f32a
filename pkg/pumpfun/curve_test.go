package pumpfun

import (
	"encoding/binary"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pump-fun-sdk-go/pkg/anchor"
)

func encodeCurve(tag []byte, vt, vs, rt, rs, supply uint64, complete byte) []byte {
	data := append([]byte{}, tag...)
	for _, v := range []uint64{vt, vs, rt, rs, supply} {
		data = binary.LittleEndian.AppendUint64(data, v)
	}
	return append(data, complete)
}

func curveData(vt, vs, rt, rs, supply uint64, complete byte) []byte {
	return encodeCurve(anchor.BondingCurveDiscriminator.Bytes(), vt, vs, rt, rs, supply, complete)
}

func TestDecodeBondingCurve(t *testing.T) {
	state, err := DecodeBondingCurve(curveData(1000, 2000, 500, 1000, 1500, 1))
	require.NoError(t, err)

	assert.Equal(t, uint64(1000), state.VirtualTokenReserves)
	assert.Equal(t, uint64(2000), state.VirtualSolReserves)
	assert.Equal(t, uint64(500), state.RealTokenReserves)
	assert.Equal(t, uint64(1000), state.RealSolReserves)
	assert.Equal(t, uint64(1500), state.TokenTotalSupply)
	assert.True(t, state.Complete)
}

func TestDecodeBondingCurve_CompleteFlag(t *testing.T) {
	tests := []struct {
		flag byte
		want bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{0xff, true},
	}

	for _, tt := range tests {
		state, err := DecodeBondingCurve(curveData(1, 1, 1, 1, 1, tt.flag))
		require.NoError(t, err)
		assert.Equal(t, tt.want, state.Complete, "flag=%d", tt.flag)
	}
}

func TestDecodeBondingCurve_TrailingBytesIgnored(t *testing.T) {
	data := append(curveData(100, 200, 50, 100, 150, 0), 0xde, 0xad, 0xbe, 0xef)

	state, err := DecodeBondingCurve(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), state.TokenTotalSupply)
	assert.False(t, state.Complete)
}

func TestDecodeBondingCurve_WrongPrefix(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	want := anchor.BondingCurveDiscriminator.Bytes()

	for i := 0; i < 500; i++ {
		tag := make([]byte, anchor.DiscriminatorSize)
		rng.Read(tag)
		if string(tag) == string(want) {
			continue
		}
		body := make([]byte, rng.Intn(64))
		rng.Read(body)

		_, err := DecodeBondingCurve(append(tag, body...))
		require.True(t, errors.Is(err, ErrInvalidDiscriminator), "iteration %d: %v", i, err)
	}

	_, err := DecodeBondingCurve(append([]byte("invalid!"), make([]byte, 41)...))
	assert.ErrorIs(t, err, ErrInvalidDiscriminator)
}

func TestDecodeBondingCurve_ShortBuffers(t *testing.T) {
	full := curveData(1, 2, 3, 4, 5, 1)

	for _, n := range []int{0, 1, 7} {
		_, err := DecodeBondingCurve(full[:n])
		assert.ErrorIs(t, err, ErrInvalidDiscriminator, "len=%d", n)
	}

	for _, n := range []int{8, 16, 40, BondingCurveAccountSize - 1} {
		_, err := DecodeBondingCurve(full[:n])
		assert.ErrorIs(t, err, ErrMalformedLayout, "len=%d", n)
	}

	_, err := DecodeBondingCurve(full[:BondingCurveAccountSize])
	assert.NoError(t, err)
}

func TestBondingCurveState_String(t *testing.T) {
	state, err := DecodeBondingCurve(curveData(100, 200, 50, 100, 150, 1))
	require.NoError(t, err)

	s := state.String()
	assert.Contains(t, s, "BondingCurveState")
	assert.Contains(t, s, "virtualToken=100")
	assert.Contains(t, s, "virtualSOL=200")
	assert.Contains(t, s, "complete=true")
}

func TestBondingCurveState_CheckTradable(t *testing.T) {
	open := &BondingCurveState{VirtualTokenReserves: 1, VirtualSolReserves: 1}
	assert.NoError(t, open.CheckTradable())

	done := &BondingCurveState{VirtualTokenReserves: 1, VirtualSolReserves: 1, Complete: true}
	assert.ErrorIs(t, done.CheckTradable(), ErrCurveComplete)
}
