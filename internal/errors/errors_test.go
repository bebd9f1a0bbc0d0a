package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidRecord, "record %d: missing price", 3),
			want: "INVALID_RECORD: record 3: missing price",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInvalidFormat, io.ErrUnexpectedEOF, "decode %s", "data.json"),
			want: "INVALID_FORMAT: decode data.json: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsAndGetCode(t *testing.T) {
	base := New(ErrCodeFileNotFound, "no such dataset")
	wrapped := fmt.Errorf("load: %w", base)

	assert.True(t, Is(wrapped, ErrCodeFileNotFound))
	assert.False(t, Is(wrapped, ErrCodeInvalidInput))
	assert.Equal(t, ErrCodeFileNotFound, GetCode(wrapped))
	assert.Equal(t, Code(""), GetCode(io.EOF))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "no such dataset", UserMessage(New(ErrCodeFileNotFound, "no such dataset")))
	assert.Equal(t, "decode: EOF", UserMessage(Wrap(ErrCodeInvalidFormat, io.EOF, "decode")))
	assert.Equal(t, "EOF", UserMessage(io.EOF))
}
