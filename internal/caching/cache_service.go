package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"dealerstock/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService is a read-through cache for vehicle records and order
// representations. A miss is (nil, nil); callers fall back to the store.
type CacheService interface {
	GetVehicle(ctx context.Context, vehicleID uuid.UUID) (*models.Vehicle, error)
	SetVehicle(ctx context.Context, vehicle *models.Vehicle, ttl time.Duration) error
	DeleteVehicle(ctx context.Context, vehicleID uuid.UUID) error

	GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*models.OrderDetail, error)
	SetOrderDetail(ctx context.Context, detail *models.OrderDetail, ttl time.Duration) error
	DeleteOrderDetail(ctx context.Context, orderID uuid.UUID) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, addr)
	}

	return &redisCacheService{client: client}
}

func vehicleKey(vehicleID uuid.UUID) string {
	return fmt.Sprintf("vehicle:%s", vehicleID)
}

func orderKey(orderID uuid.UUID) string {
	return fmt.Sprintf("order:%s", orderID)
}

func (s *redisCacheService) GetVehicle(ctx context.Context, vehicleID uuid.UUID) (*models.Vehicle, error) {
	data, err := s.client.Get(ctx, vehicleKey(vehicleID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	vehicle := &models.Vehicle{}
	if err := json.Unmarshal(data, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *redisCacheService) SetVehicle(ctx context.Context, vehicle *models.Vehicle, ttl time.Duration) error {
	data, err := json.Marshal(vehicle)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, vehicleKey(vehicle.ID), data, ttl).Err()
}

func (s *redisCacheService) DeleteVehicle(ctx context.Context, vehicleID uuid.UUID) error {
	return s.client.Del(ctx, vehicleKey(vehicleID)).Err()
}

func (s *redisCacheService) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*models.OrderDetail, error) {
	data, err := s.client.Get(ctx, orderKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	detail := &models.OrderDetail{}
	if err := json.Unmarshal(data, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *redisCacheService) SetOrderDetail(ctx context.Context, detail *models.OrderDetail, ttl time.Duration) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, orderKey(detail.ID), data, ttl).Err()
}

func (s *redisCacheService) DeleteOrderDetail(ctx context.Context, orderID uuid.UUID) error {
	return s.client.Del(ctx, orderKey(orderID)).Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
