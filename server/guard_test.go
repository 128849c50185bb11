package server

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shengmingqijiquan/streamlit/errors"
	"github.com/shengmingqijiquan/streamlit/message"
	"github.com/shengmingqijiquan/streamlit/metric"
)

// textMsg builds a forward message with a text body of the given size.
func textMsg(deltaID string, bodySize int) *message.ForwardMsg {
	msg := message.NewForwardMsg(deltaID)
	msg.Delta.NewElement = &message.Element{
		Text: &message.TextElement{Body: strings.Repeat("x", bodySize)},
	}
	return msg
}

func TestMessageGuard_UnderLimitPassesThrough(t *testing.T) {
	guard := NewMessageGuard(1024, nil)
	msg := textMsg("delta-1", 64)

	direct, err := msg.Marshal()
	require.NoError(t, err)

	guarded, err := guard.Serialize(msg)
	require.NoError(t, err)

	assert.Equal(t, direct, guarded, "under the limit, guard output must equal a direct Marshal")

	// The caller's message must be untouched
	require.NotNil(t, msg.Delta.NewElement.Text)
	assert.Len(t, msg.Delta.NewElement.Text.Body, 64)
	assert.Nil(t, msg.Delta.NewElement.Exception)
}

func TestMessageGuard_AtLimitPassesThrough(t *testing.T) {
	msg := textMsg("delta-1", 64)
	direct, err := msg.Marshal()
	require.NoError(t, err)

	guard := NewMessageGuard(len(direct), nil)
	guarded, err := guard.Serialize(msg)
	require.NoError(t, err)
	assert.Equal(t, direct, guarded, "a message exactly at the limit is not converted")
}

func TestMessageGuard_OversizedConvertsToException(t *testing.T) {
	guard := NewMessageGuard(256, nil)
	msg := textMsg("delta-42", 4096)

	direct, err := msg.Marshal()
	require.NoError(t, err)

	guarded, err := guard.Serialize(msg)
	require.NoError(t, err)
	assert.Less(t, len(guarded), len(direct), "replacement payload must be smaller than the original")

	decoded, err := message.UnmarshalForwardMsg(guarded)
	require.NoError(t, err)
	assert.Equal(t, "delta-42", decoded.Delta.ID, "delta ID must survive conversion")

	require.NotNil(t, decoded.Delta.NewElement)
	exc := decoded.Delta.NewElement.Exception
	require.NotNil(t, exc, "converted message must carry an exception element")
	assert.Equal(t, "Data too large", exc.Message)
	assert.Equal(t, "MessageSizeError", exc.Type)

	// The caller's message must be untouched
	require.NotNil(t, msg.Delta.NewElement.Text)
	assert.Len(t, msg.Delta.NewElement.Text.Body, 4096)
}

func TestMessageGuard_OversizedReplacementNotLooped(t *testing.T) {
	// A delta ID comparable in size to the limit makes even the
	// replacement oversized. It is returned as-is, never re-converted.
	guard := NewMessageGuard(64, nil)
	msg := textMsg(strings.Repeat("i", 512), 4096)

	guarded, err := guard.Serialize(msg)
	require.NoError(t, err)

	decoded, err := message.UnmarshalForwardMsg(guarded)
	require.NoError(t, err)
	assert.Equal(t, msg.Delta.ID, decoded.Delta.ID)
	require.NotNil(t, decoded.Delta.NewElement.Exception)
}

func TestMessageGuard_Metrics(t *testing.T) {
	m := metric.NewRegistry().Metrics()
	guard := NewMessageGuard(256, m)

	_, err := guard.Serialize(textMsg("a", 10))
	require.NoError(t, err)
	_, err = guard.Serialize(textMsg("b", 4096))
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.MessagesSerialized))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MessagesOversized))
}

func TestSerializeForwardMsg_Default(t *testing.T) {
	msg := textMsg("delta-default", 128)

	data, err := SerializeForwardMsg(msg)
	require.NoError(t, err)

	decoded, err := message.UnmarshalForwardMsg(data)
	require.NoError(t, err)
	assert.Equal(t, "delta-default", decoded.Delta.ID)
	assert.Nil(t, decoded.Delta.NewElement.Exception)
}

func TestMessageSizeLimit_Value(t *testing.T) {
	assert.Equal(t, 50_000_000, MessageSizeLimit)
}

func TestMessageSizeError_MatchesSentinel(t *testing.T) {
	var err error = &MessageSizeError{Size: 100, Limit: 64}

	assert.EqualError(t, err, "Data too large")
	assert.ErrorIs(t, err, errors.ErrMessageTooLarge)
}
