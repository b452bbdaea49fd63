package repository

import (
	"context"

	"contract-dependency-graph/internal/domain/entity"
)

// ExplorerRepository defines read access to a block explorer API.
// Implementations return *entity.ProviderError for every failure.
type ExplorerRepository interface {
	// GetContractCreation retrieves the creation record of a contract
	GetContractCreation(ctx context.Context, contractAddress entity.Address) (*entity.CreationInfo, error)

	// GetTransactions retrieves the normal transaction list of an address
	// in the order returned by the explorer
	GetTransactions(ctx context.Context, address entity.Address) ([]*entity.TransactionRecord, error)
}
