package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	app_service "contract-dependency-graph/internal/application/service"
	"contract-dependency-graph/internal/domain/entity"
	domain_service "contract-dependency-graph/internal/domain/service"
	"contract-dependency-graph/internal/infrastructure/blockchain"
	"contract-dependency-graph/internal/infrastructure/config"
	"contract-dependency-graph/internal/infrastructure/explorer"
	"contract-dependency-graph/internal/infrastructure/logger"
	"contract-dependency-graph/internal/infrastructure/messaging"
	"contract-dependency-graph/internal/presentation/render"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the root command and returns the process exit code
func execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graphbuilder [contract-address]",
		Short: "Build a dependency graph for a smart contract",
		Long: `Resolves a contract's deployer, the contracts the deployer has
transacted with, and the contract's most frequent callers using an
Etherscan-compatible explorer API, then prints the resulting graph.

Configuration is read from config.yaml, .env and the environment
(ETHERSCAN_API_KEY is required).`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log, err := logger.NewLogger(cfg.App.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer log.Sync()

			address := cfg.App.ContractAddress
			if len(args) == 1 {
				address = args[0]
			}
			if !blockchain.IsValidAddress(address) {
				return fmt.Errorf("%w: %s", blockchain.ErrInvalidAddress, address)
			}

			return run(cmd.Context(), cfg, log, entity.Address(address), cmd.OutOrStdout())
		},
	}
}

// run wires the application with fx, builds one graph and renders it to out
func run(ctx context.Context, cfg *config.Config, log *logger.Logger, contractAddress entity.Address, out io.Writer) error {
	var (
		graphService domain_service.ContractGraphService
		ethClient    *blockchain.EthereumClient
		publisher    *messaging.NATSPublisher
	)

	app := fx.New(
		// Provide dependencies
		fx.Supply(cfg),
		fx.Supply(log),
		fx.Supply(&cfg.App),
		fx.Supply(&cfg.Explorer),
		fx.Supply(&cfg.Ethereum),
		fx.Supply(&cfg.NATS),

		// Infrastructure providers
		fx.Provide(
			explorer.NewEtherscanClient,
			blockchain.NewEthereumClient,
			messaging.NewNATSPublisher,
		),

		// Application providers
		fx.Provide(
			app_service.NewGraphBuilderService,
		),

		// Lifecycle hooks
		fx.Invoke(registerConnections),
		fx.Populate(&graphService, &ethClient, &publisher),

		// Configure logging
		fx.WithLogger(func() fxevent.Logger {
			return fxevent.NopLogger
		}),
	)

	if err := app.Start(ctx); err != nil {
		log.Error("Failed to start application", zap.Error(err))
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			log.Error("Failed to stop application gracefully", zap.Error(err))
		}
	}()

	checkContract(ctx, ethClient, contractAddress, log)

	graph, err := graphService.BuildGraph(ctx, contractAddress)
	if err != nil {
		if errors.Is(err, domain_service.ErrNoDeployer) {
			return fmt.Errorf("no dependency graph for %s: %w", contractAddress, err)
		}
		return err
	}

	if err := publisher.PublishGraph(ctx, graph); err != nil {
		log.Error("Failed to publish dependency graph", zap.Error(err))
	}

	renderer := render.NewGraphRenderer(out, cfg.App.Color)
	return renderer.Render(graph, cfg.App.Output)
}

// registerConnections opens and closes the optional RPC and NATS connections
func registerConnections(
	lifecycle fx.Lifecycle,
	ethClient *blockchain.EthereumClient,
	publisher *messaging.NATSPublisher,
	log *logger.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := ethClient.Connect(ctx); err != nil {
				return err
			}
			return publisher.Connect(ctx)
		},
		OnStop: func(ctx context.Context) error {
			ethClient.Close()
			if err := publisher.Disconnect(); err != nil {
				log.Warn("Failed to drain NATS connection", zap.Error(err))
			}
			return nil
		},
	})
}

// checkContract warns when the RPC node reports no code at the address
func checkContract(ctx context.Context, ethClient *blockchain.EthereumClient, contractAddress entity.Address, log *logger.Logger) {
	if !ethClient.IsConnected() {
		return
	}

	isContract, err := ethClient.IsContract(ctx, contractAddress.String())
	if err != nil {
		log.Warn("Failed to check contract code", zap.Error(err))
		return
	}
	if !isContract {
		log.Warn("Address has no contract code", zap.String("address", contractAddress.String()))
	}
}
