package list_providers

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BarberService/internal/availability"
	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// UseCase use case для списка провайдеров на экране выбора мастера
type UseCase struct {
	providerRepo ProviderRepository
	businessRepo BusinessRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	providerRepo ProviderRepository,
	businessRepo BusinessRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		providerRepo: providerRepo,
		businessRepo: businessRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute возвращает провайдеров с признаком доступности записи.
// Доступные идут первыми, внутри групп сохраняется порядок хранилища.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.BusinessID != nil && *req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	providers, err := uc.providerRepo.List(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("ListProviders: failed to list providers: %v", err)
		return nil, fmt.Errorf("%w: failed to list providers: %v", ErrInternal, err)
	}

	businesses, err := uc.businessRepo.GetByIDs(ctx, businessIDs(providers))
	if err != nil {
		uc.logger.Error("ListProviders: failed to get businesses: %v", err)
		return nil, fmt.Errorf("%w: failed to get businesses: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	listings := make([]availability.ProviderListing, 0, len(providers))
	for _, p := range providers {
		listings = append(listings, availability.ProviderListing{
			Provider:    p,
			Bookability: availability.EvaluateBookability(p, businessOf(p, businesses), now),
		})
	}

	availability.SortForSelection(listings)

	resp := &Response{Providers: make([]Provider, 0, len(listings))}
	for _, l := range listings {
		if req.OnlyBookable && !l.Bookability.Bookable {
			continue
		}
		resp.Providers = append(resp.Providers, toProvider(l, businessOf(l.Provider, businesses)))
	}

	uc.logger.Info("ListProviders: returned %d of %d providers", len(resp.Providers), len(providers))

	return resp, nil
}

func businessIDs(providers []*domain.Provider) []int64 {
	seen := make(map[int64]struct{}, len(providers))
	ids := make([]int64, 0, len(providers))
	for _, p := range providers {
		if p.BusinessID == nil {
			continue
		}
		if _, ok := seen[*p.BusinessID]; ok {
			continue
		}
		seen[*p.BusinessID] = struct{}{}
		ids = append(ids, *p.BusinessID)
	}
	return ids
}

func businessOf(p *domain.Provider, businesses map[int64]*domain.Business) *domain.Business {
	if p.BusinessID == nil {
		return nil
	}
	return businesses[*p.BusinessID]
}

func toProvider(l availability.ProviderListing, b *domain.Business) Provider {
	p := l.Provider
	item := Provider{
		ID:             p.ID,
		BusinessID:     p.BusinessID,
		Name:           p.Name,
		WorkStartTime:  p.WorkStartTime,
		WorkEndTime:    p.WorkEndTime,
		OnLocationMode: p.EffectiveOnLocationMode(),
		Services:       p.Services,
		Bookable:       l.Bookability.Bookable,
		Reason:         l.Bookability.Reason,
	}
	if b != nil {
		item.BusinessName = b.Name
	}
	return item
}
