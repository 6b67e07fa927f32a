package pumpfun

import (
	"encoding/json"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"pump-fun-sdk-go/pkg/anchor"
	"pump-fun-sdk-go/pkg/utils"
)

// TransactionDocument is the JSON envelope carrying one serialized transaction
type TransactionDocument struct {
	Transaction *EncodedTransaction `json:"transaction"`
}

// EncodedTransaction is a serialized transaction with its text encoding.
// It unmarshals from "<data>" or the RPC form ["<data>", "<encoding>"].
type EncodedTransaction struct {
	Data     string
	Encoding string
}

// UnmarshalJSON implements json.Unmarshaler
func (e *EncodedTransaction) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		e.Data, e.Encoding = s, utils.EncodingBase64
		return nil
	}

	var parts []string
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("transaction must be a string or [data, encoding]: %w", err)
	}
	switch len(parts) {
	case 1:
		e.Data, e.Encoding = parts[0], utils.EncodingBase64
	case 2:
		e.Data, e.Encoding = parts[0], parts[1]
	default:
		return fmt.Errorf("transaction array must have 1 or 2 elements, got %d", len(parts))
	}
	return nil
}

// MarshalJSON implements json.Marshaler, always in the RPC array form
func (e EncodedTransaction) MarshalJSON() ([]byte, error) {
	encoding := e.Encoding
	if encoding == "" {
		encoding = utils.EncodingBase64
	}
	return json.Marshal([]string{e.Data, encoding})
}

// DecodedInstruction is one instruction of a decoded transaction
type DecodedInstruction struct {
	ProgramID       solana.PublicKey   `json:"programId"`
	InstructionName string             `json:"instruction_name"`
	Accounts        []solana.PublicKey `json:"accounts"`
	Data            []byte             `json:"data"`
}

// ParseTransactionDocument parses the JSON envelope
func ParseTransactionDocument(raw []byte) (TransactionDocument, error) {
	var doc TransactionDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return TransactionDocument{}, wrapError(KindInvalidTransactionData, "transaction", err, "Invalid transaction data")
	}
	return doc, nil
}

// DecodeTransactionJSON parses the envelope and decodes its transaction
func DecodeTransactionJSON(raw []byte, idl *anchor.IDL) ([]DecodedInstruction, error) {
	doc, err := ParseTransactionDocument(raw)
	if err != nil {
		return nil, err
	}
	return DecodeTransaction(doc, idl)
}

// DecodeTransaction decodes every instruction of the document's transaction.
// Instruction names are resolved against idl, a nil idl names every instruction unknown.
func DecodeTransaction(doc TransactionDocument, idl *anchor.IDL) ([]DecodedInstruction, error) {
	if doc.Transaction == nil || doc.Transaction.Data == "" {
		return nil, newError(KindInvalidTransactionData, "transaction", "Invalid transaction data: field is missing or empty")
	}

	raw, err := utils.DecodeWithEncoding(doc.Transaction.Data, doc.Transaction.Encoding)
	if err != nil {
		return nil, wrapError(KindInvalidTransactionData, "transaction", err, "Invalid transaction data: cannot decode payload")
	}

	tx, err := parseTransaction(raw)
	if err != nil {
		return nil, wrapError(KindInvalidTransactionData, "transaction", err, "Invalid transaction data")
	}

	table := anchor.NewInstructionTable(idl)
	keys := tx.Message.AccountKeys

	decoded := make([]DecodedInstruction, 0, len(tx.Message.Instructions))
	for i, ix := range tx.Message.Instructions {
		programID, err := accountAt(keys, ix.ProgramIDIndex)
		if err != nil {
			return nil, wrapError(KindInvalidTransactionData, fmt.Sprintf("instructions[%d].programIdIndex", i), err, "Invalid transaction data")
		}

		accounts := make([]solana.PublicKey, 0, len(ix.Accounts))
		for j, idx := range ix.Accounts {
			key, err := accountAt(keys, idx)
			if err != nil {
				return nil, wrapError(KindInvalidTransactionData, fmt.Sprintf("instructions[%d].accounts[%d]", i, j), err, "Invalid transaction data")
			}
			accounts = append(accounts, key)
		}

		data := make([]byte, len(ix.Data))
		copy(data, ix.Data)

		decoded = append(decoded, DecodedInstruction{
			ProgramID:       programID,
			InstructionName: table.Name(data),
			Accounts:        accounts,
			Data:            data,
		})
	}

	return decoded, nil
}

func parseTransaction(raw []byte) (tx *solana.Transaction, err error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty transaction payload")
	}

	// the binary decoder can panic on truncated length prefixes
	defer func() {
		if r := recover(); r != nil {
			tx, err = nil, fmt.Errorf("malformed transaction: %v", r)
		}
	}()

	dec := bin.NewBinDecoder(raw)
	tx = new(solana.Transaction)
	if err := tx.UnmarshalWithDecoder(dec); err != nil {
		return nil, err
	}
	if n := dec.Remaining(); n != 0 {
		return nil, fmt.Errorf("wrong shape: %d trailing bytes after transaction", n)
	}
	return tx, nil
}

// accountAt resolves an index against the static account keys; lookup table
// indexes of v0 messages are not resolvable without RPC and are rejected
func accountAt(keys solana.PublicKeySlice, idx uint16) (solana.PublicKey, error) {
	if int(idx) >= len(keys) {
		return solana.PublicKey{}, fmt.Errorf("account index %d out of range (%d static keys)", idx, len(keys))
	}
	return keys[idx], nil
}
