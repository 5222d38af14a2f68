// Package attachmentapi is a thin HTTP client for the external attachment
// store. Blobs never pass through this backend; after triage we only tell the
// store which entity an attachment now belongs to.
package attachmentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/config"
)

// Client calls the attachment store's re-parent endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from the attachments config section.
func NewClient(cfg config.AttachmentsConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "attachmentapi"),
	}
}

type reparentRequest struct {
	ParentType string    `json:"parent_type"`
	ParentID   uuid.UUID `json:"parent_id"`
}

// ReparentAttachment moves the attachment under the given parent entity.
// 404 from the store maps to a plain error rather than domain.ErrNotFound:
// a missing blob at triage time is a cross-system inconsistency, not a
// user-visible lookup miss.
func (c *Client) ReparentAttachment(ctx context.Context, attachmentID uuid.UUID, newParentType string, newParentID uuid.UUID) error {
	reqURL := fmt.Sprintf("%s/v1/attachments/%s/parent", c.baseURL, attachmentID)

	body, err := json.Marshal(reparentRequest{
		ParentType: newParentType,
		ParentID:   newParentID,
	})
	if err != nil {
		return fmt.Errorf("attachmentapi: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("attachmentapi: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		c.log.ErrorContext(ctx, "reparent request failed",
			slog.String("attachment_id", attachmentID.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("attachmentapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("attachmentapi: unexpected status %d", resp.StatusCode)
	}

	c.log.DebugContext(ctx, "attachment reparented",
		slog.String("attachment_id", attachmentID.String()),
		slog.String("parent_type", newParentType),
		slog.String("parent_id", newParentID.String()),
	)

	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The store's endpoint is idempotent, so a replay is safe.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "attachmentapi retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	retry := req.Clone(ctx)
	if req.GetBody != nil {
		// The first attempt consumed the body; GetBody hands out a fresh copy.
		retry.Body, err = req.GetBody()
		if err != nil {
			return nil, err
		}
	}
	return c.httpClient.Do(retry)
}
