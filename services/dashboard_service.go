package services

import (
	"context"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	eventRepo       repositories.EventRepository
	runnerRepo      repositories.RunnerRepository
	teamRepo        repositories.TeamRepository
	participateRepo repositories.ParticipateRepository
	roundRepo       repositories.RoundRepository
	donationRepo    repositories.DonationRepository
}

func NewDashboardService(
	eventRepo repositories.EventRepository,
	runnerRepo repositories.RunnerRepository,
	teamRepo repositories.TeamRepository,
	participateRepo repositories.ParticipateRepository,
	roundRepo repositories.RoundRepository,
	donationRepo repositories.DonationRepository,
) DashboardService {
	return &dashboardService{
		eventRepo:       eventRepo,
		runnerRepo:      runnerRepo,
		teamRepo:        teamRepo,
		participateRepo: participateRepo,
		roundRepo:       roundRepo,
		donationRepo:    donationRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.eventRepo.Count(gCtx)
		stats.EventsTotal = count
		return err
	})
	g.Go(func() error {
		count, err := s.runnerRepo.Count(gCtx)
		stats.RunnersTotal = count
		return err
	})
	g.Go(func() error {
		count, err := s.teamRepo.Count(gCtx)
		stats.TeamsTotal = count
		return err
	})
	g.Go(func() error {
		count, err := s.participateRepo.Count(gCtx)
		stats.ParticipatesTotal = count
		return err
	})
	g.Go(func() error {
		count, err := s.roundRepo.Count(gCtx)
		stats.RoundsTotal = count
		return err
	})
	g.Go(func() error {
		total, err := s.donationRepo.SumAmounts(gCtx)
		stats.DonationsTotal = total
		return err
	})
	g.Go(func() error {
		activeID, err := s.eventRepo.FindActiveID(gCtx)
		stats.ActiveEventID = activeID
		return err
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
