package blockchain

import (
	"context"
	"errors"
	"fmt"

	"contract-dependency-graph/internal/infrastructure/config"
	"contract-dependency-graph/internal/infrastructure/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

var (
	// ErrInvalidAddress is returned for strings that are not 20-byte hex addresses
	ErrInvalidAddress = errors.New("invalid Ethereum address")
	// ErrNotConnected is returned when the RPC node is disabled or not dialed yet
	ErrNotConnected = errors.New("ethereum client not connected")
)

// EthereumClient checks on-chain state through a JSON-RPC node
type EthereumClient struct {
	config *config.EthereumConfig
	client *ethclient.Client
	logger *logger.Logger
}

// NewEthereumClient creates a new Ethereum client
func NewEthereumClient(cfg *config.EthereumConfig, logger *logger.Logger) *EthereumClient {
	return &EthereumClient{
		config: cfg,
		logger: logger.WithComponent("ethereum-client"),
	}
}

// Connect dials the configured RPC node. It is a no-op when disabled.
func (ec *EthereumClient) Connect(ctx context.Context) error {
	if !ec.config.Enabled {
		ec.logger.Info("Ethereum RPC is disabled, skipping connection")
		return nil
	}

	client, err := ethclient.DialContext(ctx, ec.config.RPCURL)
	if err != nil {
		ec.logger.Error("Failed to dial Ethereum RPC", zap.Error(err))
		return fmt.Errorf("failed to dial Ethereum RPC: %w", err)
	}

	ec.client = client
	ec.logger.Info("Connected to Ethereum RPC")
	return nil
}

// Close closes the RPC connection
func (ec *EthereumClient) Close() {
	if ec.client != nil {
		ec.client.Close()
		ec.client = nil
	}
}

// IsConnected reports whether an RPC connection is available
func (ec *EthereumClient) IsConnected() bool {
	return ec.client != nil
}

// GetCode returns the bytecode at an address; empty for an EOA
func (ec *EthereumClient) GetCode(ctx context.Context, address string) ([]byte, error) {
	if !IsValidAddress(address) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	if ec.client == nil {
		return nil, ErrNotConnected
	}

	code, err := ec.client.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get code for %s: %w", address, err)
	}
	return code, nil
}

// IsContract checks if address is a contract (has bytecode)
func (ec *EthereumClient) IsContract(ctx context.Context, address string) (bool, error) {
	code, err := ec.GetCode(ctx, address)
	if err != nil {
		return false, err
	}
	return len(code) > 0, nil
}

// IsValidAddress checks if the address format is valid
func IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}
