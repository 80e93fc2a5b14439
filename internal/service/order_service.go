package service

import (
	"context"
	"fmt"

	"fernwear/internal/model"
	"fernwear/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// GetForSession retrieves the order for a completed checkout session.
// Orders created before session ids were captured have no session match,
// so the user's most recent order is used as a fallback. Known limitation:
// under concurrent checkouts the fallback can pick the wrong order.
func (s *orderService) GetForSession(ctx context.Context, sessionID, userID string) (*model.OrderResponse, error) {
	if sessionID != "" {
		order, items, err := s.orderRepo.GetBySessionID(ctx, sessionID)
		if err != nil {
			s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to get order by session")
			return nil, fmt.Errorf("failed to get order: %w", err)
		}
		if order != nil {
			return &model.OrderResponse{Order: order, Items: items}, nil
		}

		s.logger.Debug().
			Str("session_id", sessionID).
			Str("user_id", userID).
			Msg("no order for session, falling back to most recent order")
	}

	if userID == "" {
		return nil, nil
	}

	order, items, err := s.orderRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get latest order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, nil
	}

	return &model.OrderResponse{Order: order, Items: items}, nil
}

// GetByID retrieves an order by its ID with all items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, nil
	}

	return &model.OrderResponse{Order: order, Items: items}, nil
}
