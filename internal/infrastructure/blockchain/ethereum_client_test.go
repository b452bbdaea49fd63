package blockchain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contract-dependency-graph/internal/infrastructure/config"
	"contract-dependency-graph/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contractAddr = "0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"
	walletAddr   = "0x000000000000000000000000000000000000dEaD"
)

// newRPCServer answers eth_getCode with bytecode for contractAddr only
func newRPCServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
			Params []interface{}   `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Method != "eth_getCode" || len(req.Params) == 0 {
			http.Error(w, "unexpected request", http.StatusBadRequest)
			return
		}

		result := "0x"
		if addr, ok := req.Params[0].(string); ok && strings.EqualFold(addr, contractAddr) {
			result = "0x6080604052"
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":"%s"}`, req.ID, result)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress(contractAddr))
	assert.True(t, IsValidAddress(strings.ToLower(contractAddr)))
	assert.False(t, IsValidAddress("0x1234"))
	assert.False(t, IsValidAddress("not-an-address"))
}

func TestIsContract(t *testing.T) {
	srv := newRPCServer(t)
	client := NewEthereumClient(&config.EthereumConfig{Enabled: true, RPCURL: srv.URL}, logger.NewNop())
	require.NoError(t, client.Connect(context.Background()))
	defer client.Close()

	isContract, err := client.IsContract(context.Background(), contractAddr)
	require.NoError(t, err)
	assert.True(t, isContract)

	isContract, err = client.IsContract(context.Background(), walletAddr)
	require.NoError(t, err)
	assert.False(t, isContract)
}

func TestIsContractErrors(t *testing.T) {
	client := NewEthereumClient(&config.EthereumConfig{}, logger.NewNop())
	require.NoError(t, client.Connect(context.Background()))
	assert.False(t, client.IsConnected())

	_, err := client.IsContract(context.Background(), contractAddr)
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = client.IsContract(context.Background(), "0xnope")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
