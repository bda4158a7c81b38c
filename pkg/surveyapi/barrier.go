package surveyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/models"
)

// SubmitBarrier posts a new barrier record. Credentials must be stored. Any 2xx status
// is success and the response body is ignored.
func (c *Client) SubmitBarrier(ctx context.Context, b models.Barrier) error {
	const op = "submit barrier"

	if err := b.Validate(); err != nil {
		return err
	}
	if !c.IsAuthenticated(ctx) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotAuthenticated)
	}
	if b.Photos == nil {
		b.Photos = []string{}
	}

	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode barrier: %w", err)
	}

	endpoint, err := c.buildURL(op, c.barrierPath)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, op, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if _, _, err := c.do(op, req); err != nil {
		return err
	}

	c.logger.Info("Submitted barrier",
		zap.String("question_id", b.QuestionID),
		zap.String("request_id", req.Header.Get(RequestIDHeader)),
		zap.Int("photos", len(b.Photos)),
		zap.Int("payload_bytes", len(payload)))
	return nil
}
