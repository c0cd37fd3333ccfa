package mocks

import (
	"context"

	"storefront-server/internal/messaging"

	"github.com/stretchr/testify/mock"
)

// Mock EventPublisher
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishProductPublished(ctx context.Context, event messaging.ProductPublishedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
