package message

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/shengmingqijiquan/streamlit/errors"
)

// ForwardMsg is the unit of data sent from the server to a browser client.
// It is mutable and owned by the caller; serialization never modifies it.
type ForwardMsg struct {
	Delta Delta `json:"delta"`
}

// Delta describes a single update to the client-side report. The ID ties
// the update to its slot in the client's element tree and must survive any
// server-side rewriting of the message content.
type Delta struct {
	ID         string   `json:"id,omitempty"`
	NewElement *Element `json:"new_element,omitempty"`
}

// Element holds the content of a delta. At most one field may be set;
// Validate enforces this oneof-style constraint.
type Element struct {
	Text      *TextElement      `json:"text,omitempty"`
	DataFrame *DataFrameElement `json:"data_frame,omitempty"`
	Exception *ExceptionElement `json:"exception,omitempty"`
}

// TextElement is a block of formatted text.
type TextElement struct {
	Body   string `json:"body"`
	Format string `json:"format,omitempty"` // markdown, plain, json
}

// DataFrameElement carries tabular data as column-ordered rows.
type DataFrameElement struct {
	Columns []string   `json:"columns,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

// NewForwardMsg creates a ForwardMsg with the given delta ID.
// An empty ID is replaced with a generated UUID.
func NewForwardMsg(deltaID string) *ForwardMsg {
	if deltaID == "" {
		deltaID = uuid.NewString()
	}
	return &ForwardMsg{Delta: Delta{ID: deltaID}}
}

// Marshal serializes the message to its JSON wire form.
func (m *ForwardMsg) Marshal() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, errors.WrapInvalid(err, "ForwardMsg", "Marshal", "encode JSON")
	}
	return data, nil
}

// UnmarshalForwardMsg decodes a serialized ForwardMsg.
func UnmarshalForwardMsg(data []byte) (*ForwardMsg, error) {
	var msg ForwardMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "ForwardMsg", "Unmarshal", err.Error())
	}
	return &msg, nil
}

// Clear resets the message in place, dropping the delta ID and content.
func (m *ForwardMsg) Clear() {
	m.Delta = Delta{}
}

// Validate checks structural invariants: a present element must carry
// exactly one content field.
func (m *ForwardMsg) Validate() error {
	el := m.Delta.NewElement
	if el == nil {
		return nil
	}

	count := 0
	if el.Text != nil {
		count++
	}
	if el.DataFrame != nil {
		count++
	}
	if el.Exception != nil {
		count++
	}
	if count != 1 {
		return errors.WrapInvalid(errors.ErrInvalidData, "ForwardMsg", "Validate",
			fmt.Sprintf("element must set exactly one content field, got %d", count))
	}
	return nil
}
