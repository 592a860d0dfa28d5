package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockChecker struct{ err error }

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheckAllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{})

	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Errorf("status = %s, want %s", report.Status, Healthy)
	}
	if report.Checks["database"] != CheckOK {
		t.Errorf("database = %s, want ok", report.Checks["database"])
	}
	if report.Checks["analyzer"] != CheckOK {
		t.Errorf("analyzer = %s, want ok", report.Checks["analyzer"])
	}
}

func TestCheckDatabaseDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("conn refused")}, &mockChecker{})

	report := svc.Check(context.Background())

	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["database"] != CheckError {
		t.Errorf("database = %s, want error", report.Checks["database"])
	}
}

func TestCheckAnalyzerDown(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{err: errors.New("503")})

	report := svc.Check(context.Background())

	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["analyzer"] != CheckError {
		t.Errorf("analyzer = %s, want error", report.Checks["analyzer"])
	}
}

func TestCheckNilAnalyzer(t *testing.T) {
	svc := New(&mockPinger{}, nil)

	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Errorf("status = %s, want %s", report.Status, Healthy)
	}
	if _, ok := report.Checks["analyzer"]; ok {
		t.Error("analyzer check present without a checker")
	}
}
