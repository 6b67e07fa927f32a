package pumpfun

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pump-fun-sdk-go/pkg/anchor"
)

func serializeTransaction(t *testing.T, payer solana.PublicKey, ixs ...solana.Instruction) []byte {
	t.Helper()

	tx, err := solana.NewTransaction(ixs, solana.Hash{}, solana.TransactionPayer(payer))
	require.NoError(t, err)
	return marshalUnsigned(t, tx)
}

func marshalUnsigned(t *testing.T, tx *solana.Transaction) []byte {
	t.Helper()

	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)
	raw, err := tx.MarshalBinary()
	require.NoError(t, err)
	return raw
}

func base64Document(raw []byte) TransactionDocument {
	return TransactionDocument{Transaction: &EncodedTransaction{Data: base64.StdEncoding.EncodeToString(raw)}}
}

func TestDecodeTransaction_BuyAndSell(t *testing.T) {
	f := newTradeFixture()
	buy, err := BuildBuy(f.payer, f.mint, f.curve, f.assocCurve, 0.5)
	require.NoError(t, err)
	sell, err := BuildSell(f.payer, f.mint, f.curve, f.assocCurve, 42)
	require.NoError(t, err)

	raw := serializeTransaction(t, f.payer, buy.ToSolana(), sell.ToSolana())

	decoded, err := DecodeTransaction(base64Document(raw), anchor.PumpFunIDL)
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	for i, ix := range []*Instruction{buy, sell} {
		got := decoded[i]
		assert.Equal(t, ProgramID, got.ProgramID)
		assert.Equal(t, ix.Data, got.Data)

		require.Len(t, got.Accounts, len(ix.Accounts))
		for j, meta := range ix.Accounts {
			assert.Equal(t, meta.PublicKey(), got.Accounts[j], "instruction %d account %d", i, j)
		}
	}
	assert.Equal(t, "buy", decoded[0].InstructionName)
	assert.Equal(t, "sell", decoded[1].InstructionName)
}

func TestDecodeTransaction_WithoutIDL(t *testing.T) {
	f := newTradeFixture()
	buy, err := BuildBuy(f.payer, f.mint, f.curve, f.assocCurve, 1)
	require.NoError(t, err)

	decoded, err := DecodeTransaction(base64Document(serializeTransaction(t, f.payer, buy.ToSolana())), nil)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, anchor.UnknownInstruction, decoded[0].InstructionName)
}

func TestDecodeTransaction_PreservesOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	names := []string{"buy", "sell", "create", "withdraw", "not_in_idl"}

	for round := 0; round < 25; round++ {
		payer := newPubkey()
		n := rng.Intn(8) + 1

		var (
			ixs       []solana.Instruction
			wantNames []string
			wantAccts []int
		)
		for i := 0; i < n; i++ {
			name := names[rng.Intn(len(names))]
			data := append(anchor.ComputeInstructionDiscriminator(name).Bytes(), byte(i), byte(round))

			count := rng.Intn(5)
			metas := make(solana.AccountMetaSlice, 0, count)
			for j := 0; j < count; j++ {
				metas = append(metas, solana.NewAccountMeta(newPubkey(), rng.Intn(2) == 0, false))
			}

			ixs = append(ixs, solana.NewInstruction(ProgramID, metas, data))
			wantAccts = append(wantAccts, count)
			if name == "not_in_idl" {
				name = anchor.UnknownInstruction
			}
			wantNames = append(wantNames, name)
		}

		decoded, err := DecodeTransaction(base64Document(serializeTransaction(t, payer, ixs...)), anchor.PumpFunIDL)
		require.NoError(t, err)
		require.Len(t, decoded, n)

		for i := range decoded {
			assert.Equal(t, wantNames[i], decoded[i].InstructionName, "round %d instruction %d", round, i)
			assert.Len(t, decoded[i].Accounts, wantAccts[i], "round %d instruction %d", round, i)
			assert.Equal(t, []byte{byte(i), byte(round)}, decoded[i].Data[8:])
		}
	}
}

func TestDecodeTransactionJSON_Forms(t *testing.T) {
	f := newTradeFixture()
	sell, err := BuildSell(f.payer, f.mint, f.curve, f.assocCurve, 5)
	require.NoError(t, err)
	raw := serializeTransaction(t, f.payer, sell.ToSolana())

	b64 := base64.StdEncoding.EncodeToString(raw)
	docs := []string{
		fmt.Sprintf(`{"transaction": %q}`, b64),
		fmt.Sprintf(`{"transaction": [%q]}`, b64),
		fmt.Sprintf(`{"transaction": [%q, "base64"]}`, b64),
		fmt.Sprintf(`{"transaction": [%q, "base58"]}`, base58.Encode(raw)),
	}

	for _, doc := range docs {
		decoded, err := DecodeTransactionJSON([]byte(doc), anchor.PumpFunIDL)
		require.NoError(t, err, doc)
		require.Len(t, decoded, 1)
		assert.Equal(t, "sell", decoded[0].InstructionName)
	}
}

func TestDecodeTransaction_InvalidData(t *testing.T) {
	f := newTradeFixture()
	buy, err := BuildBuy(f.payer, f.mint, f.curve, f.assocCurve, 1)
	require.NoError(t, err)
	raw := serializeTransaction(t, f.payer, buy.ToSolana())
	trailing := append(append([]byte{}, raw...), 1, 2, 3)

	docs := map[string]string{
		"empty object":     `{}`,
		"null field":       `{"transaction": null}`,
		"empty string":     `{"transaction": ""}`,
		"wrong type":       `{"transaction": 5}`,
		"too many parts":   `{"transaction": ["a", "base64", "x"]}`,
		"not json":         `transaction`,
		"not base64":       `{"transaction": "!!!"}`,
		"unknown encoding": fmt.Sprintf(`{"transaction": [%q, "jsonParsed"]}`, base64.StdEncoding.EncodeToString(raw)),
		"not a tx":         fmt.Sprintf(`{"transaction": [%q]}`, base64.StdEncoding.EncodeToString([]byte("test_data"))),
		"truncated":        fmt.Sprintf(`{"transaction": %q}`, base64.StdEncoding.EncodeToString(raw[:len(raw)/2])),
		"trailing bytes":   fmt.Sprintf(`{"transaction": %q}`, base64.StdEncoding.EncodeToString(trailing)),
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeTransactionJSON([]byte(doc), anchor.PumpFunIDL)
			assert.ErrorIs(t, err, ErrInvalidTransactionData)
		})
	}

	_, err = DecodeTransaction(TransactionDocument{}, nil)
	assert.ErrorIs(t, err, ErrInvalidTransactionData)
}

func TestDecodeTransaction_IndexOutOfRange(t *testing.T) {
	f := newTradeFixture()
	buy, err := BuildBuy(f.payer, f.mint, f.curve, f.assocCurve, 1)
	require.NoError(t, err)

	tx, err := solana.NewTransaction([]solana.Instruction{buy.ToSolana()}, solana.Hash{}, solana.TransactionPayer(f.payer))
	require.NoError(t, err)
	tx.Message.Instructions[0].Accounts[0] = 200

	_, err = DecodeTransaction(base64Document(marshalUnsigned(t, tx)), anchor.PumpFunIDL)
	assert.ErrorIs(t, err, ErrInvalidTransactionData)
}

func TestDecodedInstruction_JSON(t *testing.T) {
	ix := DecodedInstruction{
		ProgramID:       ProgramID,
		InstructionName: "buy",
		Accounts:        []solana.PublicKey{Global},
		Data:            anchor.BuyDiscriminator.Bytes(),
	}

	out, err := json.Marshal(ix)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &fields))
	for _, key := range []string{"programId", "instruction_name", "accounts", "data"} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, ProgramID.String(), fields["programId"])
}

func TestLoadTransactionDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tx.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"transaction": ["dummy"]}`), 0o600))

	doc, err := LoadTransactionDocument(path)
	require.NoError(t, err)
	require.NotNil(t, doc.Transaction)
	assert.Equal(t, "dummy", doc.Transaction.Data)
	assert.Equal(t, "base64", doc.Transaction.Encoding)

	_, err = LoadTransactionDocument(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"transaction": ["dummy", "base64"]}`, string(out))
}
