package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"contract-dependency-graph/internal/domain/entity"
	"contract-dependency-graph/internal/infrastructure/config"
	"contract-dependency-graph/internal/infrastructure/logger"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATSPublisher emits built dependency graphs on a NATS subject
type NATSPublisher struct {
	conn   *nats.Conn
	config *config.NATSConfig
	logger *logger.Logger
}

// NewNATSPublisher creates a new NATS publisher
func NewNATSPublisher(cfg *config.NATSConfig, logger *logger.Logger) *NATSPublisher {
	return &NATSPublisher{
		config: cfg,
		logger: logger.WithComponent("nats-publisher"),
	}
}

// Subject returns the subject graphs are published on
func (n *NATSPublisher) Subject() string {
	return fmt.Sprintf("%s.graphs", n.config.SubjectPrefix)
}

// Connect connects to the NATS server
func (n *NATSPublisher) Connect(ctx context.Context) error {
	if !n.config.Enabled {
		n.logger.Info("NATS is disabled, skipping connection")
		return nil
	}

	n.logger.Info("Connecting to NATS server", zap.String("url", n.config.URL))

	opts := []nats.Option{
		nats.Name("contract-dependency-graph"),
		nats.Timeout(n.config.ConnectTimeout),
		nats.ReconnectWait(n.config.ReconnectDelay),
		nats.MaxReconnects(n.config.ReconnectAttempts),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			n.logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			n.logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			n.logger.Info("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(n.config.URL, opts...)
	if err != nil {
		n.logger.Error("Failed to connect to NATS", zap.Error(err))
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	n.conn = conn
	return nil
}

// PublishGraph publishes a graph as JSON and waits for the server to
// acknowledge the flush. Does nothing when NATS is disabled.
func (n *NATSPublisher) PublishGraph(ctx context.Context, graph *entity.DependencyGraph) error {
	if n.conn == nil {
		return nil
	}

	data, err := json.Marshal(graph)
	if err != nil {
		return fmt.Errorf("failed to marshal dependency graph: %w", err)
	}

	subject := n.Subject()
	if err := n.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish dependency graph: %w", err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", err)
	}

	n.logger.Info("Published dependency graph",
		zap.String("subject", subject),
		zap.String("contract", graph.ContractAddress.String()))
	return nil
}

// Disconnect drains and closes the NATS connection
func (n *NATSPublisher) Disconnect() error {
	if n.conn == nil {
		return nil
	}
	err := n.conn.Drain()
	n.conn = nil
	return err
}

// IsConnected checks if connected to NATS
func (n *NATSPublisher) IsConnected() bool {
	return n.conn != nil && n.conn.IsConnected()
}
