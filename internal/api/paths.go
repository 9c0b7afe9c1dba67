// Package api provides the client for the chat inference endpoint.
package api

// GJSON paths for extracting values from chat responses.
// The endpoint speaks the Ollama /api/chat format:
//
//	{"model": "...", "message": {"role": "assistant", "content": "..."}, "done": true, ...}
const (
	PathMessageContent = "message.content"
	PathModel          = "model"
	PathDone           = "done"
	PathError          = "error"

	// Timing counters, reported in nanoseconds and tokens
	PathTotalDuration = "total_duration"
	PathEvalCount     = "eval_count"
)
