package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONFromMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanJSONFromMarkdown(tt.in))
	}
}
