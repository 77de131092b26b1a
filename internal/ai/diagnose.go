package ai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Diagnose turns a provider error into a short human hint for logs and ops alerts.
func Diagnose(err error) string {
	if err == nil {
		return ""
	}

	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	msg := strings.ToLower(err.Error())
	has := func(code string) bool {
		return strings.Contains(msg, "status code: "+code) || strings.Contains(msg, "error "+code)
	}

	switch {
	case status == 401 || has("401"):
		return "Invalid API key."
	case status == 404 || has("404"):
		return "Model not found."
	case status == 429 || has("429"):
		return "Rate limit or quota exceeded."
	case (status == 400 || has("400")) && strings.Contains(msg, "model"):
		return "Model name is invalid."
	case status == 400 || has("400"):
		return "Malformed request."
	case status >= 500 || has("500") || has("503"):
		return "Provider internal error."
	case errors.Is(err, context.DeadlineExceeded) || strings.Contains(msg, "deadline exceeded"):
		return "Request timed out."
	}
	return "Unknown provider error: " + err.Error()
}
