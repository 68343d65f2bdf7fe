package health

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var ErrNotServing = errors.New("relay health service is not serving")

// GRPCChecker asks a standard gRPC health endpoint whether the relay serves.
type GRPCChecker struct {
	conn    *grpc.ClientConn
	client  healthpb.HealthClient
	service string
}

// NewGRPCChecker dials addr lazily; the first Check establishes the connection.
func NewGRPCChecker(addr, service string) (*GRPCChecker, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("health client for %s: %w", addr, err)
	}
	return &GRPCChecker{conn: conn, client: healthpb.NewHealthClient(conn), service: service}, nil
}

func (p *GRPCChecker) Check(ctx context.Context) error {
	resp, err := p.client.Check(ctx, &healthpb.HealthCheckRequest{Service: p.service})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrNotServing, resp.GetStatus())
	}
	return nil
}

func (p *GRPCChecker) Close() error {
	return p.conn.Close()
}
