package services

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/tripload/internal/schema"
	"github.com/vvka-141/tripload/pkg/tripload"
)

type mockConnector struct {
	pool *pgxpool.Pool
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

type mockFetcher struct {
	payload []byte
	err     error
	calls   int
}

func (m *mockFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	m.calls++
	return m.payload, m.err
}

type mockDecoder struct {
	ds  *tripload.Dataset
	err error
}

func (m *mockDecoder) Decode(_ context.Context, _ []byte) (*tripload.Dataset, error) {
	return m.ds, m.err
}

type mockInspector struct {
	exists    bool
	existsErr error
	count     int64
	countErr  error
}

func (m *mockInspector) TableExists(_ context.Context, _ tripload.DBConnection, _ string) (bool, error) {
	return m.exists, m.existsErr
}

func (m *mockInspector) RowCount(_ context.Context, _ tripload.DBConnection, _ string) (int64, error) {
	return m.count, m.countErr
}

type mockApprover struct {
	approved bool
	err      error
	calls    int
}

func (m *mockApprover) RequestApproval(_ context.Context, _ string) (bool, error) {
	m.calls++
	return m.approved, m.err
}

type mockLoader struct {
	report *tripload.LoadReport
	err    error
	calls  int
}

func (m *mockLoader) Load(_ context.Context, _ *tripload.Session, _ schema.TablePlan, _ *tripload.Dataset) (*tripload.LoadReport, error) {
	m.calls++
	return m.report, m.err
}

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}
