package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shanexuu/sot-command-center/internal/config"
	"github.com/shanexuu/sot-command-center/internal/database"
	"github.com/shanexuu/sot-command-center/internal/models"
	"github.com/shanexuu/sot-command-center/internal/repository"
	"github.com/shanexuu/sot-command-center/internal/service"
	"github.com/shanexuu/sot-command-center/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Candidate{}, &models.Organization{}, &models.Posting{}, &models.Match{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var progress *redis.Client
	if cfg.RedisURL != "" {
		progress, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer progress.Close()
	}

	var remote *ai.Client
	if cfg.OpenAIAPIKey != "" {
		remote, err = ai.NewClient(ai.Config{
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.AIModel,
			MaxTokens: cfg.AIMaxTokens,
			Logger:    logger,
		})
		if err != nil {
			log.Fatalf("failed to create ai client: %v", err)
		}
	} else {
		logger.Info().Msg("no openai api key configured, running rule-based tiers only")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	candidateRepo := repository.NewCandidateRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	postingRepo := repository.NewPostingRepository(db)
	matchRepo := repository.NewMatchRepository(db)

	eligibilityService := service.NewEligibilityService(service.DefaultEligibilityConfig(), logger)
	validationService := service.NewDocumentValidationService(logger)

	// A nil interface must stay nil; wrapping a nil *ai.Client directly
	// would defeat the remote-tier checks.
	var matchScorer ai.MatchScorer
	var postingScorer ai.PostingScorer
	if remote != nil {
		matchScorer = remote
		postingScorer = remote
	}

	scoringService := service.NewMatchScoringService(
		matchScorer,
		service.DefaultMatchWeights(),
		service.DefaultSkillSynonyms(),
		service.DefaultAvailabilityMatrix(),
		logger,
	)
	qualityService := service.NewJobQualityService(postingScorer, logger)

	// Field extraction needs the remote parser; without it candidates get
	// eligibility notes only.
	var extractor service.DocumentExtractor
	if remote != nil {
		extractor = service.NewProfileDocumentExtractor(service.NewHTTPTextProvider(nil), remote, logger)
	}

	batchService := service.NewBatchService(
		candidateRepo,
		organizationRepo,
		postingRepo,
		matchRepo,
		eligibilityService,
		validationService,
		scoringService,
		qualityService,
		extractor,
		validate,
		progress,
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if report, err := batchService.RunCandidateValidation(ctx); err != nil {
		logger.Error().Err(err).Msg("candidate validation run failed")
	} else {
		logger.Info().Str("run_id", report.RunID).Int("total", report.Total).Msg("candidate validation finished")
	}

	if report, err := batchService.RunPostingQuality(ctx); err != nil {
		logger.Error().Err(err).Msg("posting quality run failed")
	} else {
		logger.Info().Str("run_id", report.RunID).Int("total", report.Total).Msg("posting quality finished")
	}

	// The advanced pass runs first so strong pairs are materialized under
	// the higher bar; the baseline pass then fills in the remainder.
	advanced := service.MatchRunOptions{Threshold: cfg.AdvancedThreshold, ItemLimit: cfg.BatchItemLimit}
	if report, err := batchService.GenerateMatches(ctx, advanced); err != nil {
		logger.Error().Err(err).Msg("advanced match generation run failed")
	} else {
		logger.Info().
			Str("run_id", report.RunID).
			Int("threshold", cfg.AdvancedThreshold).
			Int("created", report.Succeeded).
			Int("skipped", report.Skipped).
			Msg("advanced match generation finished")
	}

	baseline := service.MatchRunOptions{Threshold: cfg.BaselineThreshold, ItemLimit: cfg.BatchItemLimit}
	if report, err := batchService.GenerateMatches(ctx, baseline); err != nil {
		logger.Error().Err(err).Msg("baseline match generation run failed")
	} else {
		logger.Info().
			Str("run_id", report.RunID).
			Int("threshold", cfg.BaselineThreshold).
			Int("created", report.Succeeded).
			Int("skipped", report.Skipped).
			Msg("baseline match generation finished")
	}
}
