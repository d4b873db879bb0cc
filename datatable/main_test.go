package datatable

import (
	"context"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testLogger struct {
	infos  []string
	errors []error
}

func (lgr *testLogger) Info(ctx context.Context, msg string, kv ...any) {
	lgr.infos = append(lgr.infos, msg)
}

func (lgr *testLogger) Error(ctx context.Context, msg string, err error, kv ...any) {
	lgr.errors = append(lgr.errors, err)
}
