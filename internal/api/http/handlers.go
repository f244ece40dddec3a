package apihttp

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	orders "crossborder-cloud/internal/orders/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// QueueStats exposes the pending event count of the running engine.
type QueueStats interface {
	QueueLen() int
}

// PipelineHandler serves the cross-stage dashboard snapshot.
type PipelineHandler struct {
	db    *sql.DB
	queue QueueStats
}

// NewPipelineHandler constructs a PipelineHandler. queue may be nil
// when no engine is running.
func NewPipelineHandler(db *sql.DB, queue QueueStats) *PipelineHandler {
	return &PipelineHandler{db: db, queue: queue}
}

type pipelineSnapshot struct {
	Orders             int64   `json:"orders"`
	SettledOrders      int64   `json:"settled_orders"`
	ClearedCustoms     int64   `json:"cleared_customs"`
	HeldCustoms        int64   `json:"held_customs"`
	CompletedShipments int64   `json:"completed_shipments"`
	BlockedShipments   int64   `json:"blocked_shipments"`
	SyncScore          float64 `json:"sync_score"`
	QueueDepth         int     `json:"queue_depth"`
}

// ServeHTTP handles GET /api/v1/pipeline.
func (h *PipelineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.db == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	ctx := r.Context()
	var snapshot pipelineSnapshot
	counts := []struct {
		dest  *int64
		query string
	}{
		{&snapshot.Orders, `SELECT COUNT(*) FROM orders`},
		{&snapshot.SettledOrders, `SELECT COUNT(*) FROM settlements WHERE status = 'completed'`},
		{&snapshot.ClearedCustoms, `SELECT COUNT(*) FROM customs_clearances WHERE status = 'cleared'`},
		{&snapshot.HeldCustoms, `SELECT COUNT(*) FROM customs_clearances WHERE status = 'held'`},
		{&snapshot.CompletedShipments, `SELECT COUNT(*) FROM logistics WHERE status = 'completed'`},
		{&snapshot.BlockedShipments, `SELECT COUNT(*) FROM logistics WHERE status = 'customs' OR status = 'pickup'`},
	}
	for _, c := range counts {
		if err := h.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			http.Error(w, "query pipeline error", http.StatusInternalServerError)
			return
		}
	}

	score, err := readSyncScore(ctx, h.db)
	if err != nil {
		http.Error(w, "query pipeline error", http.StatusInternalServerError)
		return
	}
	snapshot.SyncScore = score
	if h.queue != nil {
		snapshot.QueueDepth = h.queue.QueueLen()
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snapshot)
}

// OrderLister loads recent orders.
type OrderLister interface {
	List(ctx context.Context, limit int) ([]orders.Order, error)
}

// OrdersHandler serves order listings.
type OrdersHandler struct {
	lister OrderLister
}

// NewOrdersHandler constructs an OrdersHandler.
func NewOrdersHandler(lister OrderLister) *OrdersHandler {
	return &OrdersHandler{lister: lister}
}

type orderRow struct {
	ID          string  `json:"id"`
	OrderNumber string  `json:"order_number"`
	Enterprise  string  `json:"enterprise"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ServeHTTP handles GET /api/v1/orders.
func (h *OrdersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.lister == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	listed, err := h.lister.List(r.Context(), limit)
	if err != nil {
		http.Error(w, "query orders error", http.StatusInternalServerError)
		return
	}

	result := make([]orderRow, 0, len(listed))
	for _, item := range listed {
		result = append(result, orderRow{
			ID:          item.ID,
			OrderNumber: item.OrderNumber,
			Enterprise:  item.Enterprise,
			Category:    item.Category,
			Status:      item.Status,
			Amount:      item.Amount,
			Currency:    item.Currency,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// AuditLogsHandler serves the most recent audit log entries.
type AuditLogsHandler struct {
	db *sql.DB
}

// NewAuditLogsHandler constructs an AuditLogsHandler.
func NewAuditLogsHandler(db *sql.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type auditRow struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// ServeHTTP handles GET /api/v1/audit-logs.
func (h *AuditLogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.db == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
SELECT id, message, created_at
FROM audit_logs
ORDER BY id DESC
LIMIT $1`, limit)
	if err != nil {
		http.Error(w, "query audit logs error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	result := []auditRow{}
	for rows.Next() {
		var row auditRow
		if err := rows.Scan(&row.ID, &row.Message, &row.CreatedAt); err != nil {
			http.Error(w, "query audit logs error", http.StatusInternalServerError)
			return
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, "query audit logs error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// QualityScanner runs one data quality pass.
type QualityScanner interface {
	QualityScan(ctx context.Context) ([]string, error)
}

// QualityScanHandler triggers an on-demand data quality scan.
type QualityScanHandler struct {
	scanner QualityScanner
}

// NewQualityScanHandler constructs a QualityScanHandler.
func NewQualityScanHandler(scanner QualityScanner) *QualityScanHandler {
	return &QualityScanHandler{scanner: scanner}
}

// ServeHTTP handles POST /api/v1/quality-scan.
func (h *QualityScanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.scanner == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	issues, err := h.scanner.QualityScan(r.Context())
	if err != nil {
		http.Error(w, "quality scan error", http.StatusInternalServerError)
		return
	}
	if issues == nil {
		issues = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"issues": issues})
}

func readSyncScore(ctx context.Context, db *sql.DB) (float64, error) {
	var score float64
	err := db.QueryRowContext(ctx, `SELECT value FROM system_metrics WHERE key = 'data_sync_delay'`).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return score, nil
}

func parseLimit(r *http.Request) (int, error) {
	value := r.URL.Query().Get("limit")
	if value == "" {
		return defaultListLimit, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	if parsed > maxListLimit {
		parsed = maxListLimit
	}
	return parsed, nil
}
