package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/domain/entity"
	"github.com/billhub/billhub/internal/domain/workflow"
	"github.com/billhub/billhub/internal/infrastructure/persistence/repository"
)

// BillRepository is the persistence surface the handlers need.
type BillRepository interface {
	List(ctx context.Context, email string) ([]entity.Bill, error)
	GetByID(ctx context.Context, id string) (entity.Bill, error)
	Create(ctx context.Context, bill entity.Bill) (entity.Bill, error)
	Update(ctx context.Context, bill entity.Bill) (entity.Bill, error)
}

// ReceiptStorage is the file storage surface the handlers need.
type ReceiptStorage interface {
	Save(storedName string, content io.Reader) (string, error)
	Open(storedName string) (io.ReadCloser, error)
}

// Handlers contains all HTTP request handlers of the bill store service.
type Handlers struct {
	bills         BillRepository
	receipts      ReceiptStorage
	publicBaseURL string
	logger        *zap.Logger
}

// NewHandlers creates a new Handlers instance. publicBaseURL is the prefix
// under which stored receipts are reachable, e.g. "http://localhost:5678".
func NewHandlers(bills BillRepository, receipts ReceiptStorage, publicBaseURL string, logger *zap.Logger) *Handlers {
	return &Handlers{
		bills:         bills,
		receipts:      receipts,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// updateRequest carries a bill record serialized as a JSON string under
// the "data" key.
type updateRequest struct {
	Data string `json:"data" binding:"required"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// ListBills handles GET /api/bills. An optional email query parameter
// restricts the result to one employee's bills.
func (h *Handlers) ListBills(c *gin.Context) {
	email := c.Query("email")

	bills, err := h.bills.List(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list bills", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve bills",
		})
		return
	}
	if bills == nil {
		bills = []entity.Bill{}
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    bills,
	})
}

// GetBill handles GET /api/bills/:id
func (h *Handlers) GetBill(c *gin.Context) {
	id := c.Param("id")

	bill, err := h.bills.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   "bill not found",
			})
			return
		}
		h.logger.Error("Failed to get bill", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve bill",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    bill,
	})
}

// CreateBill handles POST /api/bills. A multipart request carries a receipt
// file plus the owner's email and creates a draft pending bill around the
// stored file. A JSON request carries a full bill record under "data".
func (h *Handlers) CreateBill(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.createFromReceipt(c)
		return
	}
	h.createFromData(c)
}

func (h *Handlers) createFromReceipt(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.logger.Error("Missing receipt file", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "missing receipt file",
		})
		return
	}
	email := c.PostForm("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "missing email",
		})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded receipt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to read receipt",
		})
		return
	}
	defer src.Close()

	// Stored under a fresh name so uploads never collide.
	storedName := uuid.NewString() + path.Ext(fileHeader.Filename)
	if _, err := h.receipts.Save(storedName, src); err != nil {
		h.logger.Error("Failed to store receipt", zap.String("file", storedName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to store receipt",
		})
		return
	}

	fileURL := h.publicBaseURL + "/receipts/" + storedName
	fileName := fileHeader.Filename
	bill := entity.Bill{
		Email:    email,
		FileURL:  &fileURL,
		FileName: &fileName,
		Status:   workflow.StatePending.String(),
	}

	created, err := h.bills.Create(c.Request.Context(), bill)
	if err != nil {
		h.logger.Error("Failed to create bill", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to create bill",
		})
		return
	}

	h.logger.Info("Receipt uploaded",
		zap.String("bill_id", created.ID),
		zap.String("email", email),
		zap.String("file", storedName))

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data: entity.CreateResult{
			FileURL: fileURL,
			Key:     created.ID,
		},
	})
}

func (h *Handlers) createFromData(c *gin.Context) {
	bill, ok := h.bindBill(c)
	if !ok {
		return
	}

	if bill.Status == "" {
		bill.Status = workflow.StatePending.String()
	}
	if !workflow.State(bill.Status).IsValid() {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid status",
		})
		return
	}

	created, err := h.bills.Create(c.Request.Context(), bill)
	if err != nil {
		h.logger.Error("Failed to create bill", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to create bill",
		})
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    created,
	})
}

// UpdateBill handles PUT /api/bills/:id. Status changes must follow the
// review workflow, other fields are replaced as submitted.
func (h *Handlers) UpdateBill(c *gin.Context) {
	id := c.Param("id")

	incoming, ok := h.bindBill(c)
	if !ok {
		return
	}

	current, err := h.bills.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{
				Success: false,
				Error:   "bill not found",
			})
			return
		}
		h.logger.Error("Failed to get bill", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve bill",
		})
		return
	}

	if incoming.Status == "" {
		incoming.Status = current.Status
	}
	if !workflow.State(incoming.Status).IsValid() {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid status",
		})
		return
	}
	if !workflow.CanTransition(workflow.State(current.Status), workflow.State(incoming.Status)) {
		h.logger.Warn("Rejected status transition",
			zap.String("id", id),
			zap.String("from", current.Status),
			zap.String("to", incoming.Status))
		c.JSON(http.StatusConflict, Response{
			Success: false,
			Error:   "invalid status transition",
		})
		return
	}

	incoming.ID = id
	incoming.CreatedAt = current.CreatedAt
	updated, err := h.bills.Update(c.Request.Context(), incoming)
	if err != nil {
		h.logger.Error("Failed to update bill", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to update bill",
		})
		return
	}

	h.logger.Info("Bill updated",
		zap.String("id", id),
		zap.String("status", updated.Status))

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    updated,
	})
}

// GetReceipt handles GET /receipts/:name, serving a stored receipt file.
func (h *Handlers) GetReceipt(c *gin.Context) {
	name := c.Param("name")

	rc, err := h.receipts.Open(name)
	if err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "receipt not found",
		})
		return
	}
	defer rc.Close()

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		h.logger.Error("Failed to stream receipt", zap.String("file", name), zap.Error(err))
	}
}

// bindBill decodes the {"data": "<json>"} payload into a bill record.
// It writes the error response itself when the payload is malformed.
func (h *Handlers) bindBill(c *gin.Context) (entity.Bill, bool) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return entity.Bill{}, false
	}

	var bill entity.Bill
	if err := json.Unmarshal([]byte(req.Data), &bill); err != nil {
		h.logger.Error("Invalid bill payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid bill payload",
		})
		return entity.Bill{}, false
	}
	return bill, true
}
