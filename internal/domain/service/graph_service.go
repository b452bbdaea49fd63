package service

import (
	"context"
	"errors"

	"contract-dependency-graph/internal/domain/entity"
)

// Lookup names used in logs and DependencyGraph.LookupErrors
const (
	LookupCreation          = "contract_creation"
	LookupDeployerContracts = "deployer_contracts"
	LookupFrequentCallers   = "frequent_callers"
)

// DefaultTopCallers is the number of callers kept by the frequent callers lookup
const DefaultTopCallers = 5

// ErrNoDeployer is returned when a graph cannot be built because the
// contract's deployer could not be resolved
var ErrNoDeployer = errors.New("contract deployer not found")

// ContractGraphService defines the contract dependency graph operations
type ContractGraphService interface {
	// GetCreationInfo resolves the deployer and creation transaction of a contract
	GetCreationInfo(ctx context.Context, contractAddress entity.Address) (*entity.CreationInfo, error)

	// GetDeployerContracts lists the contracts a deployer has transacted with.
	// The returned slice is never nil, even when an error is returned. An
	// address without transactions yields an empty slice and no error.
	GetDeployerContracts(ctx context.Context, deployer entity.Address) ([]entity.Address, error)

	// GetFrequentCallers ranks the addresses calling a contract the most.
	// The returned slice is never nil, even when an error is returned. An
	// address without transactions yields an empty slice and no error.
	GetFrequentCallers(ctx context.Context, contractAddress entity.Address) ([]entity.CallerFrequency, error)

	// BuildGraph assembles the dependency graph of a contract. It returns
	// ErrNoDeployer when the creation lookup fails, and the context error
	// when ctx is done before the graph is complete.
	BuildGraph(ctx context.Context, contractAddress entity.Address) (*entity.DependencyGraph, error)
}
