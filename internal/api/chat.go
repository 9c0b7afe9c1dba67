package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/chatboot/internal/errors"
	"github.com/diogo/chatboot/internal/models"
)

// maxResponseSize bounds how much of a reply body is read
const maxResponseSize = 8 << 20

// Chat sends a single-turn request (system prompt plus prompt) and returns
// the assistant reply. Earlier turns are never included.
func (c *Client) Chat(ctx context.Context, prompt string) (*models.ChatResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	model := c.GetModel()
	body, err := json.Marshal(models.NewChatRequest(model, c.systemPrompt, prompt, c.options))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("Authorization", c.credentials.AuthorizationHeader())

	c.logger.Debug("sending chat request",
		zap.String("url", c.endpoint),
		zap.String("model", model),
		zap.Int("prompt_len", len(prompt)))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apierrors.FromStatus(resp.StatusCode, c.endpoint, string(errorBody))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, c.transportError(ctx, err)
	}

	result, err := parseChatResponse(data)
	if err != nil {
		return nil, err
	}
	if result.Model == "" {
		result.Model = model
	}

	c.logger.Debug("chat reply received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("content_len", len(result.Content)),
		zap.Int64("eval_count", result.EvalCount))

	return result, nil
}

// transportError classifies a failed round trip
func (c *Client) transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(fmt.Sprintf("no reply from %s within %s", c.endpoint, c.timeout))
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierrors.NewTimeoutError(netErr.Error())
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("chat request canceled: %w", context.Canceled)
	}
	return apierrors.NewNetworkError("chat", c.endpoint, err)
}

// parseChatResponse extracts the reply from an /api/chat body
func parseChatResponse(body []byte) (*models.ChatResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(body)

	// Some servers answer 200 with {"error": "..."}
	if errMsg := parsed.Get(PathError); errMsg.Exists() && !parsed.Get(PathMessageContent).Exists() {
		return nil, apierrors.NewParseError(errMsg.String(), PathError)
	}

	content := parsed.Get(PathMessageContent)
	if !content.Exists() {
		return nil, apierrors.NewParseError(apierrors.ErrNoContent.Error(), PathMessageContent)
	}
	if content.Type != gjson.String {
		return nil, apierrors.NewParseError("content is not a string", PathMessageContent)
	}

	return &models.ChatResult{
		Content:       content.String(),
		Model:         parsed.Get(PathModel).String(),
		Done:          parsed.Get(PathDone).Bool(),
		TotalDuration: time.Duration(parsed.Get(PathTotalDuration).Int()),
		EvalCount:     parsed.Get(PathEvalCount).Int(),
	}, nil
}
