package mock

import (
	"context"

	"github.com/fwojciec/mailpress"
)

var _ mailpress.DeliveryService = (*DeliveryService)(nil)

// DeliveryService is a mock implementation of mailpress.DeliveryService.
type DeliveryService struct {
	CreateDeliveryFn   func(ctx context.Context, delivery *mailpress.Delivery) error
	FindDeliveryByIDFn func(ctx context.Context, id string) (*mailpress.Delivery, error)
	FindDeliveriesFn   func(ctx context.Context, filter mailpress.DeliveryFilter) ([]*mailpress.Delivery, error)
	UpdateDeliveryFn   func(ctx context.Context, id string, upd mailpress.DeliveryUpdate) (*mailpress.Delivery, error)
}

func (s *DeliveryService) CreateDelivery(ctx context.Context, delivery *mailpress.Delivery) error {
	return s.CreateDeliveryFn(ctx, delivery)
}

func (s *DeliveryService) FindDeliveryByID(ctx context.Context, id string) (*mailpress.Delivery, error) {
	return s.FindDeliveryByIDFn(ctx, id)
}

func (s *DeliveryService) FindDeliveries(ctx context.Context, filter mailpress.DeliveryFilter) ([]*mailpress.Delivery, error) {
	return s.FindDeliveriesFn(ctx, filter)
}

func (s *DeliveryService) UpdateDelivery(ctx context.Context, id string, upd mailpress.DeliveryUpdate) (*mailpress.Delivery, error) {
	return s.UpdateDeliveryFn(ctx, id, upd)
}
