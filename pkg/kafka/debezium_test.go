package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDebeziumMessage(t *testing.T) {
	raw := []byte(`{
		"payload": {
			"before": null,
			"after": {"id": "DDD_2024_101", "province": "KwaZulu-Natal", "stage": "Active"},
			"source": {"connector": "postgresql", "db": "protea", "schema": "public", "table": "interventions"},
			"op": "c",
			"ts_ms": 1724932800000
		}
	}`)

	envelope, err := ParseDebeziumMessage(raw)
	require.NoError(t, err)

	assert.True(t, envelope.Payload.IsCreate())
	assert.False(t, envelope.Payload.IsUpdate())
	assert.False(t, envelope.Payload.IsDelete())
	assert.Equal(t, "interventions", envelope.Payload.Source.Table)
	assert.Equal(t, "DDD_2024_101", envelope.Payload.RecordID())
	assert.Equal(t, int64(1724932800000), envelope.Payload.Timestamp().UnixMilli())
}

func TestParseDebeziumMessageDelete(t *testing.T) {
	raw := []byte(`{
		"payload": {
			"before": {"id": "OUT_2024_401", "action_id": "ACT_2024_301"},
			"after": null,
			"source": {"table": "outcomes"},
			"op": "d",
			"ts_ms": 1724932800000
		}
	}`)

	envelope, err := ParseDebeziumMessage(raw)
	require.NoError(t, err)

	assert.True(t, envelope.Payload.IsDelete())
	// Delete events only carry the before image.
	assert.Equal(t, "OUT_2024_401", envelope.Payload.RecordID())
}

func TestParseDebeziumMessageSnapshotRead(t *testing.T) {
	raw := []byte(`{
		"payload": {
			"after": {"id": "DEC_2024_201"},
			"source": {"table": "decisions", "snapshot": "true"},
			"op": "r",
			"ts_ms": 1724932800000
		}
	}`)

	envelope, err := ParseDebeziumMessage(raw)
	require.NoError(t, err)
	assert.True(t, envelope.Payload.IsCreate())
}

func TestParseDebeziumMessageMalformed(t *testing.T) {
	_, err := ParseDebeziumMessage([]byte(`not json`))
	assert.Error(t, err)
}

func TestRecordIDMissing(t *testing.T) {
	raw := []byte(`{"payload": {"source": {"table": "actions"}, "op": "u", "ts_ms": 1}}`)

	envelope, err := ParseDebeziumMessage(raw)
	require.NoError(t, err)
	assert.Empty(t, envelope.Payload.RecordID())
}
