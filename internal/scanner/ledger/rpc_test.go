package ledger

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcCall struct {
	ID     any               `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// newRPCServer 按 method 返回预置的 result
func newRPCServer(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		var call rpcCall
		assert.NoError(t, json.Unmarshal(body, &call))

		result, ok := results[call.Method]
		if !ok {
			t.Errorf("unexpected method %s", call.Method)
			result = "null"
		}
		id, _ := json.Marshal(call.ID)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(id) + `,"result":` + result + `}`))
	}))
}

func TestParseCommitment(t *testing.T) {
	c, err := ParseCommitment("")
	require.NoError(t, err)
	assert.Equal(t, rpc.CommitmentConfirmed, c)

	c, err = ParseCommitment("Finalized")
	require.NoError(t, err)
	assert.Equal(t, rpc.CommitmentFinalized, c)

	_, err = ParseCommitment("max")
	assert.Error(t, err)
}

func TestRPCClientGetBalance(t *testing.T) {
	srv := newRPCServer(t, map[string]string{
		"getBalance": `{"context":{"slot":1},"value":40000000000}`,
	})
	defer srv.Close()

	c := NewRPCClient(rpc.New(srv.URL), rpc.CommitmentConfirmed)
	lamports, err := c.GetBalance(context.Background(), solana.SystemProgramID)
	require.NoError(t, err)
	assert.Equal(t, uint64(40_000_000_000), lamports)
}

func TestRPCClientGetAccount(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{1, 2, 3})
	srv := newRPCServer(t, map[string]string{
		"getAccountInfo": `{"context":{"slot":1},"value":{"data":["` + payload + `","base64"],"executable":false,"lamports":1,"owner":"` + solana.TokenProgramID.String() + `","rentEpoch":0}}`,
	})
	defer srv.Close()

	c := NewRPCClient(rpc.New(srv.URL), rpc.CommitmentConfirmed)
	data, err := c.GetAccount(context.Background(), solana.SystemProgramID)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestRPCClientGetAccountNotFound(t *testing.T) {
	srv := newRPCServer(t, map[string]string{
		"getAccountInfo": `{"context":{"slot":1},"value":null}`,
	})
	defer srv.Close()

	c := NewRPCClient(rpc.New(srv.URL), rpc.CommitmentConfirmed)
	_, err := c.GetAccount(context.Background(), solana.SystemProgramID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestRPCClientGetSignaturesForAddress(t *testing.T) {
	var newest, oldest solana.Signature
	newest[0] = 1
	oldest[0] = 2
	srv := newRPCServer(t, map[string]string{
		"getSignaturesForAddress": `[` +
			`{"signature":"` + newest.String() + `","slot":20,"blockTime":1700000100,"err":null,"memo":null},` +
			`{"signature":"` + oldest.String() + `","slot":10,"blockTime":null,"err":null,"memo":null}` +
			`]`,
	})
	defer srv.Close()

	c := NewRPCClient(rpc.New(srv.URL), rpc.CommitmentProcessed)
	sigs, err := c.GetSignaturesForAddress(context.Background(), solana.SystemProgramID, "")
	require.NoError(t, err)
	require.Len(t, sigs, 2)
	assert.Equal(t, newest.String(), sigs[0].Signature)
	require.NotNil(t, sigs[0].BlockTime)
	assert.Equal(t, int64(1_700_000_100), *sigs[0].BlockTime)
	assert.Nil(t, sigs[1].BlockTime)
}

func TestRPCClientGetSignaturesInvalidBefore(t *testing.T) {
	c := NewRPCClient(rpc.New("http://127.0.0.1:0"), rpc.CommitmentConfirmed)
	_, err := c.GetSignaturesForAddress(context.Background(), solana.SystemProgramID, "not-a-signature")
	assert.Error(t, err)
}
