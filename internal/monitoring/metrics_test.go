package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	m := New(true)
	assert.NotNil(t, m)
	assert.True(t, m.enabled)

	m2 := New(false)
	assert.NotNil(t, m2)
	assert.False(t, m2.enabled)
}

func TestRecordRequest_Enabled(t *testing.T) {
	RequestsTotal.Reset()
	RequestDuration.Reset()

	m := New(true)

	m.RecordRequest(TransportHTTP, "/v1/chat", "200", 100*time.Millisecond)
	m.RecordRequest(TransportHTTP, "/v1/chat", "200", 150*time.Millisecond)
	m.RecordRequest(TransportGRPC, "Chat", "Unauthenticated", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(RequestsTotal.WithLabelValues(TransportHTTP, "/v1/chat", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(RequestsTotal.WithLabelValues(TransportGRPC, "Chat", "Unauthenticated")))
	assert.Equal(t, 2, testutil.CollectAndCount(RequestDuration))
}

func TestRecordRequest_Disabled(t *testing.T) {
	RequestsTotal.Reset()

	m := New(false)
	m.RecordRequest(TransportHTTP, "/v1/chat", "200", 100*time.Millisecond)

	assert.Equal(t, 0, testutil.CollectAndCount(RequestsTotal))
}

func TestRecordAuthRejection(t *testing.T) {
	AuthRejectionsTotal.Reset()

	m := New(true)
	m.RecordAuthRejection(TransportHTTP, "missing_key")
	m.RecordAuthRejection(TransportHTTP, "missing_key")
	m.RecordAuthRejection(TransportGRPC, "invalid_key")

	assert.Equal(t, 2.0, testutil.ToFloat64(AuthRejectionsTotal.WithLabelValues(TransportHTTP, "missing_key")))
	assert.Equal(t, 1.0, testutil.ToFloat64(AuthRejectionsTotal.WithLabelValues(TransportGRPC, "invalid_key")))
}

func TestRecordBackendError(t *testing.T) {
	BackendErrorsTotal.Reset()

	m := New(true)
	m.RecordBackendError("generate")
	m.RecordBackendError("stream")

	assert.Equal(t, 1.0, testutil.ToFloat64(BackendErrorsTotal.WithLabelValues("generate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(BackendErrorsTotal.WithLabelValues("stream")))
}

func TestRecordStreamChunks(t *testing.T) {
	StreamChunksTotal.Reset()

	m := New(true)
	m.RecordStreamChunks(TransportHTTP, 3)
	m.RecordStreamChunks(TransportHTTP, 0)

	assert.Equal(t, 3.0, testutil.ToFloat64(StreamChunksTotal.WithLabelValues(TransportHTTP)))
}

func TestUpdateBannedClients(t *testing.T) {
	m := New(true)
	m.UpdateBannedClients(4)
	assert.Equal(t, 4.0, testutil.ToFloat64(ClientBanned))

	m.UpdateBannedClients(0)
	assert.Equal(t, 0.0, testutil.ToFloat64(ClientBanned))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	// Should not panic
	m.RecordRequest(TransportHTTP, "/v1/chat", "200", time.Second)
	m.RecordAuthRejection(TransportHTTP, "missing_key")
	m.RecordBackendError("generate")
	m.RecordStreamChunks(TransportHTTP, 1)
	m.UpdateBannedClients(1)
}
