package llm

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantErr  bool
	}{
		{
			name:     "bare object",
			response: `{"relevance_score": 0.8}`,
			want:     `{"relevance_score": 0.8}`,
		},
		{
			name:     "code fence",
			response: "```json\n{\"relevance_score\": 0.8}\n```",
			want:     `{"relevance_score": 0.8}`,
		},
		{
			name:     "fence without language",
			response: "```\n{\"a\": 1}\n```",
			want:     `{"a": 1}`,
		},
		{
			name:     "surrounding prose",
			response: `Here is the analysis: {"score": 0.5} hope that helps`,
			want:     `{"score": 0.5}`,
		},
		{
			name:     "think block",
			response: "<think>let me reason about this</think>{\"score\": 1}",
			want:     `{"score": 1}`,
		},
		{
			name:     "nested object",
			response: `{"outer": {"inner": [1, 2]}}`,
			want:     `{"outer": {"inner": [1, 2]}}`,
		},
		{
			name:     "braces inside strings",
			response: `{"reasoning": "uses {curly} braces"}`,
			want:     `{"reasoning": "uses {curly} braces"}`,
		},
		{
			name:     "array",
			response: `[{"a": 1}]`,
			want:     `[{"a": 1}]`,
		},
		{
			name:     "no JSON at all",
			response: "I cannot provide a score for this.",
			wantErr:  true,
		},
		{
			name:     "unbalanced",
			response: `{"score": 0.5`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	type scored struct {
		Score float64 `json:"score"`
	}

	got, err := ParseJSONResponse[scored]("```json\n{\"score\": 0.9}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 0.9 {
		t.Errorf("got score %v, want 0.9", got.Score)
	}
}

func TestParseJSONResponseMalformed(t *testing.T) {
	type scored struct {
		Score float64 `json:"score"`
	}

	_, err := ParseJSONResponse[scored]("no json here")
	if err == nil {
		t.Fatal("expected error")
	}

	var oracleErr *Error
	if !errors.As(err, &oracleErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if oracleErr.Type != ErrorTypeMalformed {
		t.Errorf("got type %s, want %s", oracleErr.Type, ErrorTypeMalformed)
	}
	if oracleErr.Retryable {
		t.Error("malformed responses must not be retryable")
	}
}
