package usecase

import (
	"context"

	"ecadmin/internal/domain/orderview"

	"golang.org/x/sync/errgroup"
)

type metricsSource interface {
	Load(ctx context.Context) error
	Metrics() orderview.Metrics
}

// Overview はダッシュボード上部のサマリーカード。
type Overview struct {
	Orders       orderview.Metrics `json:"orders"`
	RentalOrders orderview.Metrics `json:"rental_orders"`
	Total        orderview.Metrics `json:"total"`
}

type OverviewUsecase struct {
	orders  metricsSource
	rentals metricsSource
}

func NewOverviewUsecase(orders metricsSource, rentals metricsSource) *OverviewUsecase {
	return &OverviewUsecase{orders: orders, rentals: rentals}
}

func (u *OverviewUsecase) Get() Overview {
	o := u.orders.Metrics()
	r := u.rentals.Metrics()
	return Overview{
		Orders:       o,
		RentalOrders: r,
		Total:        o.Add(r),
	}
}

// LoadAll は2種別を並行して読み込む。片方が失敗してももう片方は読み込む。
func (u *OverviewUsecase) LoadAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return u.orders.Load(ctx) })
	g.Go(func() error { return u.rentals.Load(ctx) })
	return g.Wait()
}
