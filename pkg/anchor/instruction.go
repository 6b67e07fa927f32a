package anchor

import (
	"encoding/binary"
	"fmt"
)

// InstructionBuilder helps build Anchor instruction data
type InstructionBuilder struct {
	discriminator Discriminator
	data          []byte
}

// NewInstructionBuilder creates a new instruction builder
func NewInstructionBuilder(instructionName string) *InstructionBuilder {
	discriminator := ComputeInstructionDiscriminator(instructionName)
	data := make([]byte, DiscriminatorSize, DiscriminatorSize+16)
	copy(data, discriminator[:])
	return &InstructionBuilder{
		discriminator: discriminator,
		data:          data,
	}
}

// AddU64 adds a u64 value to instruction data (little endian)
func (ib *InstructionBuilder) AddU64(value uint64) *InstructionBuilder {
	ib.data = binary.LittleEndian.AppendUint64(ib.data, value)
	return ib
}

// AddBool adds a boolean to instruction data
func (ib *InstructionBuilder) AddBool(value bool) *InstructionBuilder {
	if value {
		ib.data = append(ib.data, 1)
	} else {
		ib.data = append(ib.data, 0)
	}
	return ib
}

// Build returns the final instruction data
func (ib *InstructionBuilder) Build() []byte {
	return ib.data
}

// GetDiscriminator returns the instruction discriminator
func (ib *InstructionBuilder) GetDiscriminator() Discriminator {
	return ib.discriminator
}

// Reader reads little-endian fields that follow an 8-byte discriminator
type Reader struct {
	data   []byte
	offset int
}

// NewReader creates a reader positioned after the discriminator
func NewReader(data []byte) *Reader {
	return &Reader{
		data:   data,
		offset: DiscriminatorSize,
	}
}

// ReadU64 reads a u64 value (little endian)
func (r *Reader) ReadU64() (uint64, error) {
	if r.offset+8 > len(r.data) {
		return 0, fmt.Errorf("not enough data to read u64 at offset %d", r.offset)
	}
	value := binary.LittleEndian.Uint64(r.data[r.offset:])
	r.offset += 8
	return value, nil
}

// ReadBool reads a boolean, any nonzero byte is true
func (r *Reader) ReadBool() (bool, error) {
	if r.offset+1 > len(r.data) {
		return false, fmt.Errorf("not enough data to read bool at offset %d", r.offset)
	}
	value := r.data[r.offset]
	r.offset++
	return value != 0, nil
}

// Remaining returns remaining bytes count
func (r *Reader) Remaining() int {
	if r.offset > len(r.data) {
		return 0
	}
	return len(r.data) - r.offset
}
