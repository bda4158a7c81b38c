package services

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/models"
	"github.com/evanterry/surveyor/pkg/repositories"
	"github.com/evanterry/surveyor/pkg/surveyapi"
)

// BarrierInput is a barrier as entered, with photos as raw JPEG bytes.
type BarrierInput struct {
	QuestionID        string
	Location          string
	UseCode           string
	DOJCode           string
	SeverityCode      string
	ExistingCondition string
	SurveyorNotes     string
	Photos            [][]byte
}

// BarrierService submits barriers and remembers which questions have one.
type BarrierService interface {
	// Submit sends the barrier and, on success, records its question id.
	// It returns the submission id sent as the request id.
	Submit(ctx context.Context, in BarrierInput) (string, error)
	// Recorded lists question ids with a submitted barrier.
	Recorded(ctx context.Context) ([]string, error)
}

type barrierService struct {
	api      SurveyAPI
	barriers repositories.BarrierRepository
	logger   *zap.Logger
}

var _ BarrierService = (*barrierService)(nil)

// NewBarrierService creates a barrier service.
func NewBarrierService(api SurveyAPI, barriers repositories.BarrierRepository, logger *zap.Logger) BarrierService {
	return &barrierService{
		api:      api,
		barriers: barriers,
		logger:   logger.Named("barriers"),
	}
}

func (s *barrierService) Submit(ctx context.Context, in BarrierInput) (string, error) {
	b := models.Barrier{
		QuestionID:        in.QuestionID,
		Location:          in.Location,
		UseCode:           in.UseCode,
		DOJCode:           in.DOJCode,
		SeverityCode:      in.SeverityCode,
		ExistingCondition: in.ExistingCondition,
		SurveyorNotes:     in.SurveyorNotes,
		Photos:            models.EncodePhotos(in.Photos),
	}
	if err := b.Validate(); err != nil {
		return "", err
	}

	var photoBytes uint64
	for _, p := range in.Photos {
		photoBytes += uint64(len(p))
	}

	submissionID := uuid.NewString()
	s.logger.Info("Submitting barrier",
		zap.String("submission_id", submissionID),
		zap.String("question_id", b.QuestionID),
		zap.Int("photos", len(b.Photos)),
		zap.String("photo_size", humanize.Bytes(photoBytes)))

	if err := s.api.SubmitBarrier(surveyapi.WithRequestID(ctx, submissionID), b); err != nil {
		s.logger.Error("Barrier submission failed",
			zap.String("submission_id", submissionID),
			zap.Error(err))
		return "", err
	}

	if err := s.barriers.Record(ctx, b.QuestionID); err != nil {
		return submissionID, fmt.Errorf("barrier %s was submitted but could not be recorded locally: %w", submissionID, err)
	}
	return submissionID, nil
}

func (s *barrierService) Recorded(ctx context.Context) ([]string, error) {
	return s.barriers.List(ctx)
}
