package anchor

import (
	"encoding/json"
	"fmt"
	"os"
)

// UnknownInstruction is the name reported for data matching no IDL instruction
const UnknownInstruction = "unknown"

// IDL represents an Anchor Interface Definition Language file
type IDL struct {
	Version      string        `json:"version"`
	Name         string        `json:"name"`
	Instructions []Instruction `json:"instructions"`
	Accounts     []Account     `json:"accounts,omitempty"`
}

// Instruction represents an instruction definition
type Instruction struct {
	Name     string       `json:"name"`
	Accounts []IDLAccount `json:"accounts"`
	Args     []Field      `json:"args"`

	// Discriminator is set by Anchor >= 0.30 IDLs, older ones derive it from the name
	Discriminator []int `json:"discriminator,omitempty"`
}

// IDLAccount represents an account in instruction context
type IDLAccount struct {
	Name     string `json:"name"`
	IsMut    bool   `json:"isMut"`
	IsSigner bool   `json:"isSigner"`
	Writable bool   `json:"writable,omitempty"`
	Signer   bool   `json:"signer,omitempty"`
}

// Mutable reports whether the account is writable in either IDL dialect
func (a IDLAccount) Mutable() bool {
	return a.IsMut || a.Writable
}

// Signs reports whether the account is a signer in either IDL dialect
func (a IDLAccount) Signs() bool {
	return a.IsSigner || a.Signer
}

// Account represents an account definition
type Account struct {
	Name string `json:"name"`
}

// Field represents a field in a struct or an instruction argument
type Field struct {
	Name string      `json:"name"`
	Type interface{} `json:"type"`
}

// LoadIDL loads an IDL file from path
func LoadIDL(path string) (*IDL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read IDL file: %w", err)
	}

	return ParseIDL(data)
}

// ParseIDL parses IDL JSON
func ParseIDL(data []byte) (*IDL, error) {
	var idl IDL
	if err := json.Unmarshal(data, &idl); err != nil {
		return nil, fmt.Errorf("failed to parse IDL JSON: %w", err)
	}

	return &idl, nil
}

// GetInstruction returns instruction by name
func (idl *IDL) GetInstruction(name string) (*Instruction, error) {
	for i := range idl.Instructions {
		if idl.Instructions[i].Name == name {
			return &idl.Instructions[i], nil
		}
	}
	return nil, fmt.Errorf("instruction '%s' not found", name)
}

// InstructionDiscriminator returns the declared discriminator, or derives it from the name
func (inst *Instruction) InstructionDiscriminator() (Discriminator, error) {
	if len(inst.Discriminator) == 0 {
		return ComputeInstructionDiscriminator(inst.Name), nil
	}
	if len(inst.Discriminator) != DiscriminatorSize {
		return Discriminator{}, fmt.Errorf("instruction '%s': discriminator has %d bytes, expected %d",
			inst.Name, len(inst.Discriminator), DiscriminatorSize)
	}

	var d Discriminator
	for i, v := range inst.Discriminator {
		if v < 0 || v > 0xff {
			return Discriminator{}, fmt.Errorf("instruction '%s': discriminator byte %d out of range: %d", inst.Name, i, v)
		}
		d[i] = byte(v)
	}
	return d, nil
}

// InstructionTable maps discriminators to instruction names of one IDL
type InstructionTable struct {
	names map[Discriminator]string
}

// NewInstructionTable builds the lookup table for every instruction declared in idl.
// A nil IDL yields an empty table. When two instructions share a discriminator the
// first declared one wins; entries with an unusable discriminator are skipped.
func NewInstructionTable(idl *IDL) *InstructionTable {
	table := &InstructionTable{names: make(map[Discriminator]string)}
	if idl == nil {
		return table
	}

	for i := range idl.Instructions {
		inst := &idl.Instructions[i]
		d, err := inst.InstructionDiscriminator()
		if err != nil {
			continue
		}
		if _, exists := table.names[d]; !exists {
			table.names[d] = inst.Name
		}
	}
	return table
}

// Len returns the number of known discriminators
func (t *InstructionTable) Len() int {
	return len(t.names)
}

// Name returns the instruction name for the leading 8 bytes of data, or UnknownInstruction
func (t *InstructionTable) Name(data []byte) string {
	d, err := DiscriminatorFromBytes(data)
	if err != nil {
		return UnknownInstruction
	}
	if name, ok := t.names[d]; ok {
		return name
	}
	return UnknownInstruction
}

// InstructionNameFor resolves the instruction name of data against idl
func InstructionNameFor(idl *IDL, data []byte) string {
	return NewInstructionTable(idl).Name(data)
}

// PumpFunIDL represents the pump.fun program IDL
var PumpFunIDL = &IDL{
	Version: "0.1.0",
	Name:    "pump",
	Instructions: []Instruction{
		{
			Name: "initialize",
			Accounts: []IDLAccount{
				{Name: "global", IsMut: true},
				{Name: "user", IsMut: true, IsSigner: true},
				{Name: "systemProgram"},
			},
		},
		{
			Name: "setParams",
			// derived from "set_params", names are not converted
			Discriminator: []int{27, 234, 178, 52, 147, 2, 187, 141},
			Accounts: []IDLAccount{
				{Name: "global", IsMut: true},
				{Name: "user", IsMut: true, IsSigner: true},
				{Name: "systemProgram"},
				{Name: "eventAuthority"},
				{Name: "program"},
			},
			Args: []Field{
				{Name: "feeRecipient", Type: "publicKey"},
				{Name: "initialVirtualTokenReserves", Type: "u64"},
				{Name: "initialVirtualSolReserves", Type: "u64"},
				{Name: "initialRealTokenReserves", Type: "u64"},
				{Name: "tokenTotalSupply", Type: "u64"},
				{Name: "feeBasisPoints", Type: "u64"},
			},
		},
		{
			Name: "create",
			Accounts: []IDLAccount{
				{Name: "mint", IsMut: true, IsSigner: true},
				{Name: "mintAuthority"},
				{Name: "bondingCurve", IsMut: true},
				{Name: "associatedBondingCurve", IsMut: true},
				{Name: "global"},
				{Name: "mplTokenMetadata"},
				{Name: "metadata", IsMut: true},
				{Name: "user", IsMut: true, IsSigner: true},
				{Name: "systemProgram"},
				{Name: "tokenProgram"},
				{Name: "associatedTokenProgram"},
				{Name: "rent"},
				{Name: "eventAuthority"},
				{Name: "program"},
			},
			Args: []Field{
				{Name: "name", Type: "string"},
				{Name: "symbol", Type: "string"},
				{Name: "uri", Type: "string"},
			},
		},
		{
			Name: "buy",
			Accounts: []IDLAccount{
				{Name: "global"},
				{Name: "feeRecipient", IsMut: true},
				{Name: "mint"},
				{Name: "bondingCurve", IsMut: true},
				{Name: "associatedBondingCurve", IsMut: true},
				{Name: "associatedUser", IsMut: true},
				{Name: "user", IsMut: true, IsSigner: true},
				{Name: "systemProgram"},
				{Name: "tokenProgram"},
				{Name: "rent"},
				{Name: "eventAuthority"},
				{Name: "program"},
			},
			Args: []Field{
				{Name: "amount", Type: "u64"},
			},
		},
		{
			Name: "sell",
			Accounts: []IDLAccount{
				{Name: "global"},
				{Name: "feeRecipient", IsMut: true},
				{Name: "mint"},
				{Name: "bondingCurve", IsMut: true},
				{Name: "associatedBondingCurve", IsMut: true},
				{Name: "associatedUser", IsMut: true},
				{Name: "user", IsMut: true, IsSigner: true},
				{Name: "systemProgram"},
				{Name: "associatedTokenProgram"},
				{Name: "tokenProgram"},
				{Name: "eventAuthority"},
				{Name: "program"},
			},
			Args: []Field{
				{Name: "amount", Type: "u64"},
			},
		},
		{
			Name: "withdraw",
			Accounts: []IDLAccount{
				{Name: "global"},
				{Name: "mint"},
				{Name: "bondingCurve", IsMut: true},
				{Name: "associatedBondingCurve", IsMut: true},
				{Name: "associatedUser", IsMut: true},
				{Name: "user", IsMut: true, IsSigner: true},
				{Name: "systemProgram"},
				{Name: "tokenProgram"},
				{Name: "rent"},
				{Name: "eventAuthority"},
				{Name: "program"},
			},
		},
	},
	Accounts: []Account{
		{Name: "Global"},
		{Name: "BondingCurve"},
	},
}
