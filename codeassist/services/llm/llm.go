package llm

import (
	httputils "codeassist/codeassist/utils/http"
	"codeassist/codeassist/utils/logging"
	"context"
	"encoding/json"
	"errors"
	"io"

	"go.uber.org/zap"
)

type OllamaClient struct {
	baseURL string
}

func NewOllamaClient(baseURL string) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaClient{baseURL: baseURL + "/api"}
}

type ChatRequest struct {
	Model    string      `json:"model"`
	Messages []Message   `json:"messages"`
	Stream   bool        `json:"stream"`
	Options  interface{} `json:"options,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
	Error   string  `json:"error,omitempty"`
}

func (c *OllamaClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer logging.LogDuration(ctx, "llm_run")()
	var resp ChatResponse
	if err := httputils.PostJSON(ctx, c.baseURL+"/chat", req, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", errors.New(resp.Error)
	}
	return resp.Message.Content, nil
}

// RunStream decodes the chunked chat response into a channel of content
// deltas. Both channels close when the stream ends; an error, if any, is sent
// before closing.
func (c *OllamaClient) RunStream(ctx context.Context, req ChatRequest) (<-chan string, <-chan error) {
	ch := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		defer close(errCh)
		defer logging.LogDuration(ctx, "llm_run_stream")()

		body, err := httputils.PostStream(ctx, c.baseURL+"/chat", req)
		if err != nil {
			errCh <- err
			return
		}
		defer body.Close()

		decoder := json.NewDecoder(body)
		for {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			default:
			}

			var chunk ChatResponse
			if err := decoder.Decode(&chunk); err != nil {
				if err == io.EOF {
					return
				}
				logging.ErrorLogger.Error("llm stream decode error", zap.Error(err))
				errCh <- err
				return
			}
			if chunk.Error != "" {
				errCh <- errors.New(chunk.Error)
				return
			}
			if chunk.Done {
				return
			}
			select {
			case ch <- chunk.Message.Content:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
	}()

	return ch, errCh
}
