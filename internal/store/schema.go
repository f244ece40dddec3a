package store

import "context"

var tableDDL = []string{
	`CREATE TABLE IF NOT EXISTS system_metrics (
	key TEXT PRIMARY KEY,
	value REAL
)`,
	`CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	order_number TEXT,
	enterprise TEXT,
	category TEXT,
	status TEXT,
	amount REAL,
	currency TEXT,
	created_at TEXT,
	updated_at TEXT
)`,
	`CREATE TABLE IF NOT EXISTS settlements (
	id TEXT PRIMARY KEY,
	order_id TEXT,
	status TEXT,
	settlement_time REAL,
	risk_level TEXT
)`,
	`CREATE TABLE IF NOT EXISTS customs_clearances (
	id TEXT PRIMARY KEY,
	declaration_no TEXT,
	product TEXT,
	enterprise TEXT,
	status TEXT,
	clearance_time REAL,
	compliance REAL,
	risk_score REAL,
	order_id TEXT
)`,
	`CREATE TABLE IF NOT EXISTS logistics (
	id TEXT PRIMARY KEY,
	tracking_no TEXT,
	origin TEXT,
	destination TEXT,
	status TEXT,
	estimated_time REAL,
	actual_time REAL,
	efficiency REAL,
	order_id TEXT,
	created_at TEXT
)`,
	`CREATE TABLE IF NOT EXISTS payments (
	method TEXT PRIMARY KEY,
	volume INTEGER,
	amount REAL,
	success_rate REAL,
	avg_time REAL
)`,
}

const auditLogsSQLite = `CREATE TABLE IF NOT EXISTS audit_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	message TEXT,
	created_at TEXT
)`

const auditLogsPostgres = `CREATE TABLE IF NOT EXISTS audit_logs (
	id BIGSERIAL PRIMARY KEY,
	message TEXT,
	created_at TEXT
)`

// EnsureSchema creates the platform tables when missing. Safe to call
// on every start.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, ddl := range tableDDL {
		if _, err := s.DB.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	auditDDL := auditLogsSQLite
	if s.Dialect == DialectPostgres {
		auditDDL = auditLogsPostgres
	}
	_, err := s.DB.ExecContext(ctx, auditDDL)
	return err
}
