package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"contract-dependency-graph/internal/domain/entity"
	"contract-dependency-graph/internal/domain/repository"
	"contract-dependency-graph/internal/infrastructure/config"
	"contract-dependency-graph/internal/infrastructure/logger"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// StatusOK is the envelope status of a successful explorer response
const StatusOK = "1"

// response represents the response structure from an Etherscan-compatible API
type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// contractCreation is one element of a getcontractcreation result
type contractCreation struct {
	ContractAddress string `json:"contractAddress"`
	ContractCreator string `json:"contractCreator"`
	TxHash          string `json:"txHash"`
}

// EtherscanClient implements ExplorerRepository over the Etherscan HTTP API
type EtherscanClient struct {
	httpClient *http.Client
	config     *config.ExplorerConfig
	logger     *logger.Logger
}

// NewEtherscanClient creates a new explorer client
func NewEtherscanClient(cfg *config.ExplorerConfig, logger *logger.Logger) repository.ExplorerRepository {
	return NewEtherscanClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewEtherscanClientWithHTTP creates a client using the given HTTP client
func NewEtherscanClientWithHTTP(cfg *config.ExplorerConfig, httpClient *http.Client, logger *logger.Logger) *EtherscanClient {
	return &EtherscanClient{
		httpClient: httpClient,
		config:     cfg,
		logger:     logger.WithComponent("etherscan-client"),
	}
}

// GetContractCreation retrieves the creation record of a contract
func (c *EtherscanClient) GetContractCreation(ctx context.Context, contractAddress entity.Address) (*entity.CreationInfo, error) {
	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", entity.ActionContractCreation)
	params.Set("contractaddresses", contractAddress.String())

	var creations []contractCreation
	if err := c.query(ctx, entity.ActionContractCreation, params, &creations); err != nil {
		return nil, err
	}

	if len(creations) == 0 {
		return nil, &entity.ProviderError{
			Action:  entity.ActionContractCreation,
			Status:  StatusOK,
			Message: "no contract creation record returned",
		}
	}

	first := creations[0]
	return &entity.CreationInfo{
		ContractAddress: contractAddress,
		Deployer:        entity.Address(first.ContractCreator),
		CreationTxHash:  first.TxHash,
	}, nil
}

// GetTransactions retrieves the normal transaction list of an address
func (c *EtherscanClient) GetTransactions(ctx context.Context, address entity.Address) ([]*entity.TransactionRecord, error) {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", entity.ActionTxList)
	params.Set("address", address.String())

	var txs []*entity.TransactionRecord
	if err := c.query(ctx, entity.ActionTxList, params, &txs); err != nil {
		return nil, err
	}

	return lo.Compact(txs), nil
}

// query issues a GET request, checks the envelope status and decodes result into out
func (c *EtherscanClient) query(ctx context.Context, action string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return transportError(action, "invalid explorer URL", err)
	}

	query := endpoint.Query()
	for key, values := range params {
		query[key] = values
	}
	if c.config.ChainID != 0 {
		query.Set("chainid", strconv.FormatInt(c.config.ChainID, 10))
	}
	query.Set("apikey", c.config.APIKey)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return transportError(action, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(action, "request failed", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Explorer request completed",
		zap.String("action", action),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return transportError(action, fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode), nil)
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return transportError(action, "failed to decode response", err)
	}

	if envelope.Status != StatusOK {
		return &entity.ProviderError{
			Action:  action,
			Status:  envelope.Status,
			Message: envelope.Message,
			Detail:  resultDetail(envelope.Result),
		}
	}

	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return transportError(action, "failed to decode result", err)
	}

	return nil
}

// resultDetail extracts the explanation some failure envelopes put in result
func resultDetail(raw json.RawMessage) string {
	var detail string
	if err := json.Unmarshal(raw, &detail); err != nil {
		return ""
	}
	return detail
}

func transportError(action, message string, err error) *entity.ProviderError {
	return &entity.ProviderError{
		Action:  action,
		Status:  entity.StatusTransport,
		Message: message,
		Err:     err,
	}
}
