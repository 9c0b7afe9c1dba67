// Package models contains data types and constants for the chat inference API.
package models

import "fmt"

// DefaultModel is the model requested when none is configured
const DefaultModel = "gemma3:4b"

// DefaultSystemPrompt steers the assistant toward Spanish-language Python help
const DefaultSystemPrompt = "You are a coding assistant specialized in Python programming. " +
	"Your goal is to provide accurate, clear, and helpful responses to all Python-related inquiries. " +
	"Always respond in Spanish. Whenever possible, include the sources where you obtained the information in your answers."

// SamplingOptions are the generation parameters sent with every request
type SamplingOptions struct {
	Temperature float64 `json:"temperature" mapstructure:"temperature"`
	TopP        float64 `json:"top_p" mapstructure:"top_p"`
	TopK        int     `json:"top_k" mapstructure:"top_k"`
	MaxTokens   int     `json:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultSamplingOptions returns the fixed sampling options used by the chat
func DefaultSamplingOptions() SamplingOptions {
	return SamplingOptions{
		Temperature: 1,
		TopP:        0.95,
		TopK:        64,
		MaxTokens:   512,
	}
}

// Validate checks that the options are within the ranges the endpoint accepts
func (o SamplingOptions) Validate() error {
	if o.Temperature < 0 {
		return fmt.Errorf("temperature must be >= 0, got %v", o.Temperature)
	}
	if o.TopP < 0 || o.TopP > 1 {
		return fmt.Errorf("top_p must be between 0 and 1, got %v", o.TopP)
	}
	if o.TopK < 0 {
		return fmt.Errorf("top_k must be >= 0, got %d", o.TopK)
	}
	if o.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be >= 0, got %d", o.MaxTokens)
	}
	return nil
}

// DefaultHeaders returns the headers sent with every chat request.
// Authorization is added separately by the client.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "chatboot/1.0",
	}
}
