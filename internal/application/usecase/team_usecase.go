package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/domain/entity"
	"github.com/jhoicas/palletpro-api/internal/domain/repository"
)

// TeamUseCase equipo comercial con sus métricas.
type TeamUseCase struct {
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(users repository.UserRepository, analytics repository.AnalyticsRepository) *TeamUseCase {
	return &TeamUseCase{users: users, analytics: analytics}
}

// List una fila por vendedor. Visible para administradores y vendedores.
//
// Las métricas de cada vendedor se consultan en paralelo.
func (uc *TeamUseCase) List(ctx context.Context, viewer *entity.SessionUser) ([]dto.TeamMemberRow, error) {
	if err := allow(viewer, entity.RoleAdmin, entity.RoleSalesperson); err != nil {
		return nil, err
	}
	people, err := uc.users.List(ctx, entity.RoleSalesperson)
	if err != nil {
		return nil, err
	}

	type metricsResult struct {
		idx     int
		metrics *entity.SalesMetrics
		err     error
	}
	ch := make(chan metricsResult, len(people))
	for i, u := range people {
		go func() {
			m, err := uc.analytics.GetSalesMetrics(ctx, entity.MetricsScope{SalespersonID: u.ID})
			ch <- metricsResult{i, m, err}
		}()
	}

	rows := make([]dto.TeamMemberRow, len(people))
	var firstErr error
	for range people {
		r := <-ch
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("equipo: métricas de %s: %w", people[r.idx].Name, r.err)
			}
			continue
		}
		u := people[r.idx]
		rows[r.idx] = dto.TeamMemberRow{
			ID:            u.ID,
			Name:          u.Name,
			Email:         u.Email,
			CustomerCount: r.metrics.CustomerCount,
			OrderCount:    r.metrics.OrderCount,
			TotalSales:    r.metrics.TotalSales.Round(2),
			Commissions:   r.metrics.TotalCommissions.Round(2),
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return rows, nil
}
