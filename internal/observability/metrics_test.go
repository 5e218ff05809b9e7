package observability

import (
	"testing"
	"time"

	logs "github.com/danmuck/smplog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordDecode("checksummed", "success", 120*time.Microsecond)
	RecordEncode("checksummed", "success")
	RecordResyncSkip("checksummed", 3)

	logs.Logf("observability/metrics: registration idempotent and recording paths executed")
}
