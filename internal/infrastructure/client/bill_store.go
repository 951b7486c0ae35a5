// Package client implements the remote bill store over its HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/application/port"
	"github.com/billhub/billhub/internal/domain/entity"
)

// Config holds the bill store client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// BillStore talks to the bill store service. It implements port.BillStore.
type BillStore struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// envelope mirrors the service's JSON response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// New creates a bill store client.
func New(cfg Config, logger *zap.Logger) *BillStore {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &BillStore{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// List fetches bill records, optionally restricted to one employee's email.
func (s *BillStore) List(ctx context.Context, email string) ([]entity.Bill, error) {
	url := s.baseURL + "/api/bills"
	if email != "" {
		url += "?email=" + email
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	var bills []entity.Bill
	if err := s.do(req, &bills); err != nil {
		return nil, err
	}
	if bills == nil {
		bills = []entity.Bill{}
	}
	return bills, nil
}

// Create uploads a receipt as multipart form data. The payload carries the
// file under "file" and the owning employee's email under "email".
func (s *BillStore) Create(ctx context.Context, upload port.ReceiptUpload) (entity.CreateResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", upload.FileName)
	if err != nil {
		return entity.CreateResult{}, fmt.Errorf("build multipart payload: %w", err)
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return entity.CreateResult{}, fmt.Errorf("copy receipt content: %w", err)
	}
	if err := writer.WriteField("email", upload.Email); err != nil {
		return entity.CreateResult{}, fmt.Errorf("build multipart payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return entity.CreateResult{}, fmt.Errorf("build multipart payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/bills", &body)
	if err != nil {
		return entity.CreateResult{}, fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result entity.CreateResult
	if err := s.do(req, &result); err != nil {
		return entity.CreateResult{}, err
	}
	return result, nil
}

// Update persists a bill record. The bill travels as a JSON string under
// the "data" key. A bill without an id is created server-side instead,
// which covers submissions where no receipt was uploaded first.
func (s *BillStore) Update(ctx context.Context, bill entity.Bill) (entity.Bill, error) {
	data, err := json.Marshal(bill)
	if err != nil {
		return entity.Bill{}, fmt.Errorf("marshal bill: %w", err)
	}
	payload, err := json.Marshal(map[string]string{"data": string(data)})
	if err != nil {
		return entity.Bill{}, fmt.Errorf("marshal update payload: %w", err)
	}

	method := http.MethodPut
	url := s.baseURL + "/api/bills/" + bill.ID
	if bill.ID == "" {
		method = http.MethodPost
		url = s.baseURL + "/api/bills"
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return entity.Bill{}, fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var stored entity.Bill
	if err := s.do(req, &stored); err != nil {
		return entity.Bill{}, err
	}
	return stored, nil
}

// do executes the request and decodes the envelope's data into out. Any
// non-2xx response becomes an error whose message starts with
// "Erreur <status>", which the views surface verbatim.
func (s *BillStore) do(req *http.Request, out interface{}) error {
	resp, err := s.http.Do(req)
	if err != nil {
		s.logger.Error("bill store request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fmt.Sprintf("Erreur %d", resp.StatusCode)
		var env envelope
		if jerr := json.Unmarshal(raw, &env); jerr == nil && env.Error != "" {
			message = fmt.Sprintf("%s: %s", message, env.Error)
		}
		s.logger.Error("bill store rejected request",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%s", message)
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
