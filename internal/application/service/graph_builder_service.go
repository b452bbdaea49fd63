package service

import (
	"context"
	"errors"
	"fmt"

	"contract-dependency-graph/internal/domain/entity"
	"contract-dependency-graph/internal/domain/repository"
	"contract-dependency-graph/internal/domain/service"
	"contract-dependency-graph/internal/infrastructure/config"
	"contract-dependency-graph/internal/infrastructure/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GraphBuilderService implements ContractGraphService on top of an explorer
type GraphBuilderService struct {
	explorer        repository.ExplorerRepository
	topCallers      int
	parallelLookups bool
	logger          *logger.Logger
}

// NewGraphBuilderService creates a new graph builder service
func NewGraphBuilderService(
	explorer repository.ExplorerRepository,
	cfg *config.AppConfig,
	logger *logger.Logger,
) service.ContractGraphService {
	topCallers := cfg.TopCallers
	if topCallers <= 0 {
		topCallers = service.DefaultTopCallers
	}

	return &GraphBuilderService{
		explorer:        explorer,
		topCallers:      topCallers,
		parallelLookups: cfg.ParallelLookups,
		logger:          logger.WithComponent("graph-builder"),
	}
}

// GetCreationInfo resolves the deployer and creation transaction of a contract
func (s *GraphBuilderService) GetCreationInfo(ctx context.Context, contractAddress entity.Address) (*entity.CreationInfo, error) {
	info, err := s.explorer.GetContractCreation(ctx, contractAddress)
	if err != nil {
		s.reportFailure(service.LookupCreation, contractAddress, err)
		return nil, err
	}

	if info.Deployer == "" {
		err := &entity.ProviderError{
			Action:  entity.ActionContractCreation,
			Status:  "1",
			Message: "creation record has no deployer",
		}
		s.reportFailure(service.LookupCreation, contractAddress, err)
		return nil, err
	}

	return info, nil
}

// GetDeployerContracts lists the contracts a deployer has transacted with
func (s *GraphBuilderService) GetDeployerContracts(ctx context.Context, deployer entity.Address) ([]entity.Address, error) {
	txs, err := s.explorer.GetTransactions(ctx, deployer)
	if err != nil {
		s.reportFailure(service.LookupDeployerContracts, deployer, err)
		if noActivity(err) {
			return []entity.Address{}, nil
		}
		return []entity.Address{}, err
	}

	return service.SelectDeployerContracts(txs), nil
}

// GetFrequentCallers ranks the addresses calling a contract the most
func (s *GraphBuilderService) GetFrequentCallers(ctx context.Context, contractAddress entity.Address) ([]entity.CallerFrequency, error) {
	txs, err := s.explorer.GetTransactions(ctx, contractAddress)
	if err != nil {
		s.reportFailure(service.LookupFrequentCallers, contractAddress, err)
		if noActivity(err) {
			return []entity.CallerFrequency{}, nil
		}
		return []entity.CallerFrequency{}, err
	}

	return service.RankCallers(txs, s.topCallers), nil
}

// BuildGraph assembles the dependency graph of a contract
func (s *GraphBuilderService) BuildGraph(ctx context.Context, contractAddress entity.Address) (*entity.DependencyGraph, error) {
	s.logger.Info("Building dependency graph", zap.String("contract", contractAddress.String()))

	// Step 1: the deployer is required, everything else degrades
	creation, err := s.GetCreationInfo(ctx, contractAddress)
	if err != nil {
		s.logger.Warn("Cannot build dependency graph without a deployer",
			zap.String("contract", contractAddress.String()))
		return nil, fmt.Errorf("%w for %s: %w", service.ErrNoDeployer, contractAddress, err)
	}

	s.logger.Info("Resolved contract deployer",
		zap.String("contract", contractAddress.String()),
		zap.String("deployer", creation.Deployer.String()),
		zap.String("creation_tx", creation.CreationTxHash))

	graph := &entity.DependencyGraph{
		ContractAddress: contractAddress,
		Deployer:        creation.Deployer,
		CreationTxHash:  creation.CreationTxHash,
	}

	// Steps 2 and 3 only depend on step 1. Their failures degrade the graph,
	// only cancellation by the caller aborts it.
	var deployerErr, callersErr error
	if s.parallelLookups {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			graph.DeployerContracts, deployerErr = s.GetDeployerContracts(gctx, creation.Deployer)
			return ctx.Err()
		})
		g.Go(func() error {
			graph.FrequentCallers, callersErr = s.GetFrequentCallers(gctx, contractAddress)
			return ctx.Err()
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("dependency graph for %s interrupted: %w", contractAddress, err)
		}
	} else {
		graph.DeployerContracts, deployerErr = s.GetDeployerContracts(ctx, creation.Deployer)
		graph.FrequentCallers, callersErr = s.GetFrequentCallers(ctx, contractAddress)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("dependency graph for %s interrupted: %w", contractAddress, err)
		}
	}

	s.recordFailure(graph, service.LookupDeployerContracts, deployerErr)
	s.recordFailure(graph, service.LookupFrequentCallers, callersErr)

	s.logger.Info("Dependency graph built",
		zap.String("contract", contractAddress.String()),
		zap.Int("deployer_contracts", len(graph.DeployerContracts)),
		zap.Int("frequent_callers", len(graph.FrequentCallers)),
		zap.Bool("degraded", graph.Degraded()))

	return graph, nil
}

// reportFailure logs a failed lookup once, at the point where it happened
func (s *GraphBuilderService) reportFailure(lookup string, address entity.Address, err error) {
	log := s.logger.WithFields(map[string]interface{}{
		"lookup":  lookup,
		"address": address.String(),
	})

	var fields []zap.Field
	var perr *entity.ProviderError
	if errors.As(err, &perr) {
		fields = append(fields,
			zap.String("status", perr.Status),
			zap.String("message", perr.Message))
		if perr.Detail != "" {
			fields = append(fields, zap.String("detail", perr.Detail))
		}
	}
	fields = append(fields, zap.Error(err))

	log.Error("Explorer lookup failed", fields...)
}

// noActivity reports whether err only says the address has no transactions
func noActivity(err error) bool {
	var perr *entity.ProviderError
	return errors.As(err, &perr) && perr.IsNoRecords()
}

func (s *GraphBuilderService) recordFailure(graph *entity.DependencyGraph, lookup string, err error) {
	if err == nil {
		return
	}
	if graph.LookupErrors == nil {
		graph.LookupErrors = make(map[string]string)
	}
	graph.LookupErrors[lookup] = err.Error()
}
