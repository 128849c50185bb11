package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shengmingqijiquan/streamlit/errors"
)

func TestNewForwardMsg(t *testing.T) {
	msg := NewForwardMsg("delta-1")
	assert.Equal(t, "delta-1", msg.Delta.ID)
	assert.Nil(t, msg.Delta.NewElement)

	// Empty ID gets a generated UUID
	generated := NewForwardMsg("")
	assert.NotEmpty(t, generated.Delta.ID)
	assert.NotEqual(t, generated.Delta.ID, NewForwardMsg("").Delta.ID)
}

func TestForwardMsg_RoundTrip(t *testing.T) {
	msg := NewForwardMsg("delta-7")
	msg.Delta.NewElement = &Element{
		Text: &TextElement{Body: "# Hello", Format: "markdown"},
	}

	data, err := msg.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalForwardMsg(data)
	require.NoError(t, err)
	assert.Equal(t, "delta-7", decoded.Delta.ID)
	require.NotNil(t, decoded.Delta.NewElement)
	require.NotNil(t, decoded.Delta.NewElement.Text)
	assert.Equal(t, "# Hello", decoded.Delta.NewElement.Text.Body)
}

func TestUnmarshalForwardMsg_Invalid(t *testing.T) {
	_, err := UnmarshalForwardMsg([]byte("{not json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidData))
}

func TestForwardMsg_Clear(t *testing.T) {
	msg := NewForwardMsg("delta-9")
	msg.Delta.NewElement = &Element{Text: &TextElement{Body: "body"}}

	msg.Clear()
	assert.Empty(t, msg.Delta.ID)
	assert.Nil(t, msg.Delta.NewElement)
}

func TestForwardMsg_Validate(t *testing.T) {
	tests := []struct {
		name    string
		element *Element
		wantErr bool
	}{
		{"no element", nil, false},
		{"single text", &Element{Text: &TextElement{Body: "x"}}, false},
		{"single exception", &Element{Exception: &ExceptionElement{Message: "boom"}}, false},
		{"empty element", &Element{}, true},
		{"two fields set", &Element{
			Text:      &TextElement{Body: "x"},
			Exception: &ExceptionElement{Message: "boom"},
		}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			msg := NewForwardMsg("id")
			msg.Delta.NewElement = test.element
			err := msg.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
