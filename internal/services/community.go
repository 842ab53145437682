package services

import (
	"context"
	"fmt"

	"github.com/bensuskins/nutrition-hub/internal/models"
	"github.com/bensuskins/nutrition-hub/internal/nutrition"
	"github.com/bensuskins/nutrition-hub/internal/repository"
	"golang.org/x/sync/errgroup"
)

type CommunityService struct {
	profileRepo repository.ProfileRepository
	mealRepo    repository.MealLogRepository
}

func NewCommunityService(profileRepo repository.ProfileRepository, mealRepo repository.MealLogRepository) *CommunityService {
	return &CommunityService{profileRepo: profileRepo, mealRepo: mealRepo}
}

// Report builds community statistics from every stored profile. Profiles
// without logged meals count at the default calorie intake.
func (service *CommunityService) Report(ctx context.Context) (models.CommunityReport, error) {
	var profiles []models.Profile
	var averages map[string]float64

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		found, err := service.profileRepo.FindAll(groupCtx)
		if err != nil {
			return fmt.Errorf("loading profiles: %w", err)
		}
		profiles = found
		return nil
	})
	group.Go(func() error {
		found, err := service.mealRepo.AverageDailyCalories(groupCtx)
		if err != nil {
			return fmt.Errorf("loading calorie averages: %w", err)
		}
		averages = found
		return nil
	})
	if err := group.Wait(); err != nil {
		return models.CommunityReport{}, err
	}

	records := make([]models.CommunityRecord, 0, len(profiles))
	for _, profile := range profiles {
		record := models.CommunityRecord{
			WeightKg: profile.WeightKg,
			HeightCm: profile.HeightCm,
			Region:   profile.Region,
		}
		if average, ok := averages[profile.ID]; ok {
			record.AvgCalories = &average
		}
		records = append(records, record)
	}

	stats := nutrition.ComputeCommunityStats(records)
	return models.CommunityReport{
		Stats:           stats,
		Regional:        nutrition.ComputeRegionalStats(records),
		Recommendations: nutrition.GenerateCommunityRecommendations(stats),
	}, nil
}
