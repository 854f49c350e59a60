package main

import (
	"encoding/json"
	"fmt"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RenderResponse is the JSON form of a render.
type RenderResponse struct {
	DSL        string   `json:"dsl"`
	Elements   []string `json:"elements"`
	Components int      `json:"components"`
	Relations  int      `json:"relations"`
	Files      int      `json:"files"`
	CacheHits  int      `json:"cacheHits"`
	RunIDs     []string `json:"runIds,omitempty"`
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp *RenderResponse, format OutputFormat) (string, error) {
	switch format {
	case FormatText:
		return resp.DSL + "\n", nil
	case FormatJSON:
		return formatJSON(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp any) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}
