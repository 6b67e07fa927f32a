package client

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pump-fun-sdk-go/internal/config"
	"pump-fun-sdk-go/pkg/anchor"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func curveAccountData(vt, vs, rt, rs, supply uint64, complete byte) []byte {
	data := anchor.BondingCurveDiscriminator.Bytes()
	for _, v := range []uint64{vt, vs, rt, rs, supply} {
		data = binary.LittleEndian.AppendUint64(data, v)
	}
	return append(data, complete)
}

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// newRPCServer answers JSON-RPC calls with the result returned by respond
func newRPCServer(t *testing.T, respond func(req rpcRequest) interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  respond(req),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	cfg := config.Default()
	cfg.RPCUrl = url
	return NewClient(cfg, testLogger())
}

func accountInfoResult(data []byte) interface{} {
	return map[string]interface{}{
		"context": map[string]interface{}{"slot": 42},
		"value": map[string]interface{}{
			"lamports":   1461600,
			"owner":      solana.SystemProgramID.String(),
			"data":       []string{base64.StdEncoding.EncodeToString(data), "base64"},
			"executable": false,
			"rentEpoch":  0,
		},
	}
}

func TestFetchAccountData(t *testing.T) {
	want := curveAccountData(1000, 2000, 500, 1000, 1500, 0)
	var method string
	srv := newRPCServer(t, func(req rpcRequest) interface{} {
		method = req.Method
		return accountInfoResult(want)
	})

	c := newTestClient(t, srv.URL)
	defer c.Close()

	data, err := c.FetchAccountData(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, want, data)
	assert.Equal(t, "getAccountInfo", method)
}

func TestFetchAccountData_NotFound(t *testing.T) {
	srv := newRPCServer(t, func(req rpcRequest) interface{} {
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 42},
			"value":   nil,
		}
	})

	c := newTestClient(t, srv.URL)
	defer c.Close()

	address := solana.NewWallet().PublicKey()
	_, err := c.FetchAccountData(context.Background(), address)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Contains(t, err.Error(), address.String())
}

func TestGetLatestBlockhash(t *testing.T) {
	hash := solana.HashFromBytes(make([]byte, 32))
	hash[0] = 7
	srv := newRPCServer(t, func(req rpcRequest) interface{} {
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 42},
			"value": map[string]interface{}{
				"blockhash":            hash.String(),
				"lastValidBlockHeight": 100,
			},
		}
	})

	c := newTestClient(t, srv.URL)
	defer c.Close()

	got, err := c.GetLatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hash, got)
}
