package mock

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errNoRows = errors.New("mock: sql recorder cannot serve queries outside DryRun")

// SQLRecorder stands in for a MySQL connection. Every statement gorm renders is
// recorded with its values inlined. Writes report Affected rows; reads only
// work on a DryRun session, where they are recorded and return nothing.
type SQLRecorder struct {
	mu    sync.Mutex
	stmts []string

	// Affected decides RowsAffected for a write; nil means 1.
	Affected func(stmt string) int64
}

// NewSQLDB opens a gorm MySQL handle on a fresh recorder.
func NewSQLDB(dryRun bool) (*gorm.DB, *SQLRecorder, error) {
	rec := &SQLRecorder{}
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      rec,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               dryRun,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "open sql recorder")
	}
	return db, rec, nil
}

// Statements returns what was recorded so far, BEGIN/COMMIT/ROLLBACK included.
func (r *SQLRecorder) Statements() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stmts...)
}

// Find returns the first recorded statement starting with prefix.
func (r *SQLRecorder) Find(prefix string) (string, bool) {
	for _, s := range r.Statements() {
		if strings.HasPrefix(s, prefix) {
			return s, true
		}
	}
	return "", false
}

func (r *SQLRecorder) Reset() {
	r.mu.Lock()
	r.stmts = nil
	r.mu.Unlock()
}

func (r *SQLRecorder) record(stmt string) {
	r.mu.Lock()
	r.stmts = append(r.stmts, stmt)
	r.mu.Unlock()
}

func (r *SQLRecorder) affected(stmt string) int64 {
	if r.Affected == nil {
		return 1
	}
	return r.Affected(stmt)
}

// gorm.ConnPool

func (r *SQLRecorder) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errNoRows
}

func (r *SQLRecorder) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	return execResult(r.affected(query)), nil
}

func (r *SQLRecorder) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errNoRows
}

func (r *SQLRecorder) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (r *SQLRecorder) BeginTx(context.Context, *sql.TxOptions) (gorm.ConnPool, error) {
	r.record("BEGIN")
	return &recordedTx{r}, nil
}

type recordedTx struct {
	*SQLRecorder
}

func (t *recordedTx) Commit() error {
	t.record("COMMIT")
	return nil
}

func (t *recordedTx) Rollback() error {
	t.record("ROLLBACK")
	return nil
}

type execResult int64

func (r execResult) LastInsertId() (int64, error) { return 0, nil }
func (r execResult) RowsAffected() (int64, error) { return int64(r), nil }

// logger.Interface

func (r *SQLRecorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *SQLRecorder) Info(context.Context, string, ...interface{})  {}
func (r *SQLRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *SQLRecorder) Error(context.Context, string, ...interface{}) {}

func (r *SQLRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	stmt, _ := fc()
	r.record(stmt)
}
