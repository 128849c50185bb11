package server

import (
	"log/slog"

	"github.com/shengmingqijiquan/streamlit/errors"
	"github.com/shengmingqijiquan/streamlit/message"
	"github.com/shengmingqijiquan/streamlit/metric"
)

// MessageSizeLimit is the largest serialized forward message, in bytes,
// that will be sent to a client as-is (50MB). Oversized messages are
// replaced by an exception message rather than chunked.
const MessageSizeLimit = 50 * 1000 * 1000

// MessageSizeError reports a forward message whose serialized form
// exceeded the delivery limit. Its text is what the client displays in
// place of the dropped content.
type MessageSizeError struct {
	Size  int // serialized size in bytes
	Limit int // configured limit in bytes
}

func (e *MessageSizeError) Error() string { return "Data too large" }

// Unwrap ties the error into the errors.ErrMessageTooLarge chain so
// callers can match it with errors.Is.
func (e *MessageSizeError) Unwrap() error { return errors.ErrMessageTooLarge }

// MessageGuard serializes forward messages for delivery, bounding their
// size. A nil metrics value disables instrumentation.
type MessageGuard struct {
	limit   int
	metrics *metric.Metrics
	logger  *slog.Logger
}

// NewMessageGuard creates a guard with the given size limit.
// Use MessageSizeLimit unless testing.
func NewMessageGuard(limit int, metrics *metric.Metrics) *MessageGuard {
	return &MessageGuard{
		limit:   limit,
		metrics: metrics,
		logger:  slog.Default(),
	}
}

// Serialize encodes msg for delivery to a client. If the encoding exceeds
// the guard's limit, the result is a replacement message that preserves
// the delta ID and carries a MessageSizeError exception element. msg
// itself is never modified, so callers may retain and reuse it.
//
// A replacement that is itself oversized (possible only with a delta ID
// comparable in size to the limit) is returned as-is; there is no second
// conversion pass.
func (g *MessageGuard) Serialize(msg *message.ForwardMsg) ([]byte, error) {
	data, err := msg.Marshal()
	if err != nil {
		return nil, err
	}

	if g.metrics != nil {
		g.metrics.MessagesSerialized.Inc()
		g.metrics.MessageBytes.Observe(float64(len(data)))
	}

	if len(data) <= g.limit {
		return data, nil
	}

	g.logger.Warn("forward message exceeds size limit, converting to exception",
		"delta_id", msg.Delta.ID,
		"size_bytes", len(data),
		"limit_bytes", g.limit)

	if g.metrics != nil {
		g.metrics.MessagesOversized.Inc()
	}

	replacement := &message.ForwardMsg{
		Delta: message.Delta{
			ID: msg.Delta.ID,
			NewElement: &message.Element{
				Exception: message.MarshalException(&MessageSizeError{
					Size:  len(data),
					Limit: g.limit,
				}),
			},
		},
	}
	return replacement.Marshal()
}

var defaultGuard = NewMessageGuard(MessageSizeLimit, nil)

// SerializeForwardMsg serializes msg with the default guard and the
// standard MessageSizeLimit.
func SerializeForwardMsg(msg *message.ForwardMsg) ([]byte, error) {
	return defaultGuard.Serialize(msg)
}
