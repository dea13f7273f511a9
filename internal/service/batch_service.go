package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"

	"github.com/shanexuu/sot-command-center/internal/dto"
	"github.com/shanexuu/sot-command-center/internal/models"
	"github.com/shanexuu/sot-command-center/internal/repository"
)

// DocumentExtractor produces structured profile fields from a candidate's
// uploaded document. The binary-to-text step is a black box behind this seam;
// an error means extraction failed and the validator's manual-review path
// applies.
type DocumentExtractor interface {
	Extract(ctx context.Context, documentURL string) (dto.ExtractedFields, error)
}

// MatchRunOptions parameterizes a match generation run.
type MatchRunOptions struct {
	// Threshold is the minimum score a pair must reach before a match
	// record is materialized.
	Threshold int `validate:"min=0,max=100"`
	// ItemLimit bounds the number of scored pairs; zero means unbounded.
	// Bounding the input set is the only way to bound run duration.
	ItemLimit int `validate:"min=0"`
}

// BatchService sequentially orchestrates scoring runs over entity snapshots.
// One bad record never aborts a run; only store unavailability propagates.
type BatchService interface {
	RunCandidateValidation(ctx context.Context) (dto.BatchReport, error)
	RunPostingQuality(ctx context.Context) (dto.BatchReport, error)
	GenerateMatches(ctx context.Context, opts MatchRunOptions) (dto.BatchReport, error)
}

type batchService struct {
	candidates    repository.CandidateRepository
	organizations repository.OrganizationRepository
	postings      repository.PostingRepository
	matches       repository.MatchRepository
	eligibility   EligibilityService
	validation    DocumentValidationService
	scoring       MatchScoringService
	quality       JobQualityService
	extractor     DocumentExtractor
	validator     *validator.Validate
	progress      *redis.Client
	logger        zerolog.Logger
	now           func() time.Time
}

// NewBatchService constructs the orchestrator. extractor and progress may be
// nil: without an extractor candidates receive eligibility notes only, and
// without Redis progress is simply not published.
func NewBatchService(
	candidates repository.CandidateRepository,
	organizations repository.OrganizationRepository,
	postings repository.PostingRepository,
	matches repository.MatchRepository,
	eligibility EligibilityService,
	validation DocumentValidationService,
	scoring MatchScoringService,
	quality JobQualityService,
	extractor DocumentExtractor,
	validate *validator.Validate,
	progress *redis.Client,
	logger zerolog.Logger,
) BatchService {
	return &batchService{
		candidates:    candidates,
		organizations: organizations,
		postings:      postings,
		matches:       matches,
		eligibility:   eligibility,
		validation:    validation,
		scoring:       scoring,
		quality:       quality,
		extractor:     extractor,
		validator:     validate,
		progress:      progress,
		logger:        logger.With().Str("component", "batch_service").Logger(),
		now:           time.Now,
	}
}

// batchRun tracks the lifecycle and accumulating outcome of one run.
type batchRun struct {
	svc    *batchService
	report dto.BatchReport
}

func (s *batchService) newRun(kind string) *batchRun {
	run := &batchRun{
		svc: s,
		report: dto.BatchReport{
			RunID:  uuid.NewString(),
			Kind:   kind,
			Status: dto.BatchStatusInitialized,
		},
	}
	return run
}

func (r *batchRun) start(ctx context.Context) {
	r.report.Status = dto.BatchStatusRunning
	r.report.StartedAt = r.svc.now()
	r.publish(ctx)
}

func (r *batchRun) record(ctx context.Context, key string, err error, skipped bool) {
	item := dto.BatchItemResult{Key: key, Skipped: skipped}
	switch {
	case err != nil:
		item.Error = err.Error()
		r.report.Failed++
		r.svc.logger.Warn().Err(err).Str("run_id", r.report.RunID).Str("item", key).Msg("batch item failed")
	case skipped:
		r.report.Skipped++
	default:
		item.Success = true
		r.report.Succeeded++
	}
	r.report.Total++
	r.report.Items = append(r.report.Items, item)
	r.publish(ctx)
}

func (r *batchRun) finish(ctx context.Context) dto.BatchReport {
	r.report.Status = dto.BatchStatusCompleted
	r.report.FinishedAt = r.svc.now()
	r.publish(ctx)
	return r.report
}

// publish mirrors the completed-item count to Redis for external progress
// reporting. Redis being absent or down never affects the run.
func (r *batchRun) publish(ctx context.Context) {
	if r.svc.progress == nil {
		return
	}

	key := fmt.Sprintf("sot:batch:%s", r.report.RunID)
	fields := map[string]interface{}{
		"kind":      r.report.Kind,
		"status":    r.report.Status,
		"completed": r.report.Total,
		"failed":    r.report.Failed,
	}
	if err := r.svc.progress.HSet(ctx, key, fields).Err(); err != nil {
		r.svc.logger.Warn().Err(err).Str("run_id", r.report.RunID).Msg("failed to publish batch progress")
	}
}

// runItem isolates a single unit of work, converting panics into per-item
// failures so one malformed record cannot abort the batch.
func runItem(work func() error) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("unexpected failure: %v", recovered)
		}
	}()
	return work()
}

// RunCandidateValidation checks eligibility for every pending candidate and,
// when a document and an extractor are available, cross-validates the
// extracted fields against the declared profile. Scores and notes are written
// back to the store.
func (s *batchService) RunCandidateValidation(ctx context.Context) (dto.BatchReport, error) {
	tracer := otel.Tracer("github.com/shanexuu/sot-command-center/internal/service/batch")
	ctx, span := tracer.Start(ctx, "batch.candidate_validation")
	defer span.End()

	run := s.newRun("candidate_validation")
	span.SetAttributes(attribute.String("batch.run_id", run.report.RunID))

	candidates, err := s.candidates.ListByStatus(ctx, models.CandidateStatusPending)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "candidate_snapshot_failed")
		return run.report, fmt.Errorf("list pending candidates: %w", err)
	}

	run.start(ctx)
	for _, candidate := range candidates {
		key := fmt.Sprintf("candidate:%d", candidate.ID)
		err := runItem(func() error {
			return s.validateCandidate(ctx, candidate)
		})
		run.record(ctx, key, err, false)
	}

	report := run.finish(ctx)
	span.SetAttributes(
		attribute.Int("batch.succeeded", report.Succeeded),
		attribute.Int("batch.failed", report.Failed),
	)
	s.logger.Info().
		Str("run_id", report.RunID).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("candidate validation run completed")
	return report, nil
}

func (s *batchService) validateCandidate(ctx context.Context, candidate models.Candidate) error {
	eligibility := s.eligibility.Check(candidate.GraduationYear, candidate.Institution, s.now())

	notes := []string{eligibility.Reason}
	notes = append(notes, eligibility.Warnings...)

	updates := map[string]interface{}{}

	if candidate.HasDocument() && s.extractor != nil {
		var result dto.DocumentValidationResult
		declared := dto.DeclaredFields{
			Name:           candidate.FullName,
			Institution:    candidate.Institution,
			Degree:         candidate.Degree,
			GraduationYear: candidate.GraduationYear,
		}

		extracted, err := s.extractor.Extract(ctx, candidate.DocumentURL)
		if err != nil {
			s.logger.Debug().Err(err).Uint("candidate_id", candidate.ID).Msg("document extraction failed")
			result = s.validation.Validate(nil, declared)
		} else {
			result = s.validation.Validate(&extracted, declared)
		}

		notes = append(notes, result.Notes()...)
		updates["analysis_score"] = result.Score
	}

	updates["analysis_notes"] = datatypes.NewJSONSlice(notes)

	if err := s.candidates.UpdateFields(ctx, candidate.ID, updates); err != nil {
		return fmt.Errorf("update candidate %d: %w", candidate.ID, err)
	}

	return nil
}

// RunPostingQuality scores every open posting and writes back the quality
// score and an enhanced description.
func (s *batchService) RunPostingQuality(ctx context.Context) (dto.BatchReport, error) {
	tracer := otel.Tracer("github.com/shanexuu/sot-command-center/internal/service/batch")
	ctx, span := tracer.Start(ctx, "batch.posting_quality")
	defer span.End()

	run := s.newRun("posting_quality")
	span.SetAttributes(attribute.String("batch.run_id", run.report.RunID))

	postings, err := s.postings.ListByStatus(ctx, "")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "posting_snapshot_failed")
		return run.report, fmt.Errorf("list postings: %w", err)
	}

	run.start(ctx)
	for _, posting := range postings {
		if posting.Status == models.PostingStatusClosed {
			continue
		}

		key := fmt.Sprintf("posting:%d", posting.ID)
		err := runItem(func() error {
			assessment := s.quality.Assess(ctx, posting)
			enhanced := s.quality.Enhance(ctx, posting)

			updates := map[string]interface{}{
				"quality_score":        assessment.Score,
				"enhanced_description": enhanced,
			}
			if err := s.postings.UpdateFields(ctx, posting.ID, updates); err != nil {
				return fmt.Errorf("update posting %d: %w", posting.ID, err)
			}
			return nil
		})
		run.record(ctx, key, err, false)
	}

	report := run.finish(ctx)
	span.SetAttributes(
		attribute.Int("batch.succeeded", report.Succeeded),
		attribute.Int("batch.failed", report.Failed),
	)
	s.logger.Info().
		Str("run_id", report.RunID).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("posting quality run completed")
	return report, nil
}

// GenerateMatches walks eligible candidates against every approved
// organization's published postings, materializing a suggested match wherever
// the score clears the threshold. Existing triples are skipped so re-running
// the batch is idempotent.
func (s *batchService) GenerateMatches(ctx context.Context, opts MatchRunOptions) (dto.BatchReport, error) {
	tracer := otel.Tracer("github.com/shanexuu/sot-command-center/internal/service/batch")
	ctx, span := tracer.Start(ctx, "batch.generate_matches")
	defer span.End()

	run := s.newRun("generate_matches")
	span.SetAttributes(
		attribute.String("batch.run_id", run.report.RunID),
		attribute.Int("batch.threshold", opts.Threshold),
	)

	if err := s.validator.Struct(opts); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid_options")
		return run.report, err
	}

	candidates, err := s.candidates.ListByStatus(ctx, models.CandidateStatusApproved)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "candidate_snapshot_failed")
		return run.report, fmt.Errorf("list approved candidates: %w", err)
	}

	eligible := make([]models.Candidate, 0, len(candidates))
	asOf := s.now()
	for _, candidate := range candidates {
		if s.eligibility.Check(candidate.GraduationYear, candidate.Institution, asOf).Eligible {
			eligible = append(eligible, candidate)
		}
	}

	organizations, err := s.organizations.ListByStatus(ctx, models.OrganizationStatusApproved)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "organization_snapshot_failed")
		return run.report, fmt.Errorf("list approved organizations: %w", err)
	}

	run.start(ctx)

	processed := 0
product:
	for _, organization := range organizations {
		postings, err := s.postings.ListByOrganization(ctx, organization.ID, models.PostingStatusPublished)
		if err != nil {
			// Treat a broken posting snapshot for one organization as
			// that organization's failure and move on.
			run.record(ctx, fmt.Sprintf("organization:%d", organization.ID), err, false)
			continue
		}

		for _, posting := range postings {
			for _, candidate := range eligible {
				if opts.ItemLimit > 0 && processed >= opts.ItemLimit {
					break product
				}
				processed++

				key := fmt.Sprintf("candidate:%d posting:%d", candidate.ID, posting.ID)

				skipped := false
				err := runItem(func() error {
					var innerErr error
					skipped, innerErr = s.generateMatch(ctx, candidate, organization, posting, opts.Threshold)
					return innerErr
				})
				run.record(ctx, key, err, skipped)
			}
		}
	}

	report := run.finish(ctx)
	span.SetAttributes(
		attribute.Int("batch.succeeded", report.Succeeded),
		attribute.Int("batch.skipped", report.Skipped),
		attribute.Int("batch.failed", report.Failed),
	)
	s.logger.Info().
		Str("run_id", report.RunID).
		Int("created", report.Succeeded).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("match generation run completed")
	return report, nil
}

// generateMatch scores one pair and persists it when it clears the threshold.
// The skipped return covers below-threshold pairs and already-existing
// triples.
func (s *batchService) generateMatch(ctx context.Context, candidate models.Candidate, organization models.Organization, posting models.Posting, threshold int) (bool, error) {
	// A pair must exceed the threshold; landing exactly on it is not enough.
	assessment := s.scoring.Score(ctx, candidate, organization, posting)
	if assessment.Score <= threshold {
		return true, nil
	}

	exists, err := s.matches.Exists(ctx, candidate.ID, organization.ID, posting.ID)
	if err != nil {
		return false, fmt.Errorf("check existing match: %w", err)
	}
	if exists {
		return true, nil
	}

	details := datatypes.JSONMap{"tier": assessment.Tier}
	for name, value := range assessment.Components {
		details[name] = value
	}

	match := models.Match{
		CandidateID:    candidate.ID,
		OrganizationID: organization.ID,
		PostingID:      posting.ID,
		Score:          assessment.Score,
		Status:         models.MatchStatusSuggested,
		Rationale:      s.scoring.Explain(ctx, candidate, organization, posting),
		Details:        details,
	}

	if err := s.matches.Create(ctx, &match); err != nil {
		if errors.Is(err, repository.ErrDuplicateMatch) {
			// Lost the check-then-insert race; already present is fine.
			return true, nil
		}
		return false, fmt.Errorf("create match: %w", err)
	}

	return false, nil
}
