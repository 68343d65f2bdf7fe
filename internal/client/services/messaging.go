package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gzapadmin/internal/client/client"
	"github.com/dmitrijs2005/gzapadmin/internal/client/models"
)

// ErrNotConnected is returned by operations that need a paired session.
var ErrNotConnected = errors.New("no messaging session is connected")

// MessagingService covers the paired messaging session and its delivery log.
type MessagingService interface {
	Connection(ctx context.Context) (*models.Connection, error)
	Disconnect(ctx context.Context) error
	Messages(ctx context.Context, page, limit int) ([]models.MessageLog, error)
	// ResendFailed requires conn to be non-nil.
	ResendFailed(ctx context.Context, conn *models.Connection) error
}

type messagingService struct {
	client client.Client
}

func NewMessagingService(c client.Client) MessagingService {
	return &messagingService{client: c}
}

func (s *messagingService) Connection(ctx context.Context) (*models.Connection, error) {
	return s.client.Connection(ctx)
}

func (s *messagingService) Disconnect(ctx context.Context) error {
	if err := s.client.LogoutSession(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}

func (s *messagingService) Messages(ctx context.Context, page, limit int) ([]models.MessageLog, error) {
	if page < 1 {
		page = 1
	}
	return s.client.MessageLog(ctx, page, limit)
}

func (s *messagingService) ResendFailed(ctx context.Context, conn *models.Connection) error {
	if conn == nil {
		return ErrNotConnected
	}
	return s.client.ResendFailed(ctx)
}
