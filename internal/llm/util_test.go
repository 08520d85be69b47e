package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare json untouched",
			input: `{"score": 80}`,
			want:  `{"score": 80}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"score\": 80}\n```",
			want:  `{"score": 80}`,
		},
		{
			name:  "plain fence with language tag",
			input: "```javascript\n{\"score\": 80}\n```",
			want:  `{"score": 80}`,
		},
		{
			name:  "plain fence no language tag",
			input: "```\n{\"score\": 80}\n```",
			want:  `{"score": 80}`,
		},
		{
			name:  "fence with surrounding whitespace",
			input: "  ```json\n{\"a\": 1}\n```  ",
			want:  `{"a": 1}`,
		},
		{
			name:  "unclosed json fence",
			input: "```json\n{\"a\": 1}",
			want:  `{"a": 1}`,
		},
		{
			name:  "brace on fence line is content",
			input: "```{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}
