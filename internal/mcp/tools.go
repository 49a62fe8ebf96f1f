package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/promptguard/internal/assess"
	"github.com/alexanderramin/promptguard/internal/guard"
	"github.com/google/jsonschema-go/jsonschema"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AnalyzeRiskTool is the name of the single tool this server exposes.
const AnalyzeRiskTool = "prompt_guard_analyze_risk"

// ErrMissingOperation is returned to the client as a protocol error when
// a call carries no operation string.
var ErrMissingOperation = errors.New("Missing required parameter: operation")

func analyzeRiskTool() *gomcp.Tool {
	return &gomcp.Tool{
		Name:        AnalyzeRiskTool,
		Description: "Analyze the security risk of a proposed operation",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"operation": {
					Type:        "string",
					Description: "Description of the operation to analyze",
				},
				"context": {
					Type:        "object",
					Description: "Additional context about the operation",
				},
			},
			Required: []string{"operation"},
		},
	}
}

// Assessor is the assessment surface the server needs.
type Assessor interface {
	Assess(ctx context.Context, req assess.Request, override guard.Config) (*assess.Report, error)
}

type analyzeRiskArgs struct {
	Operation any            `json:"operation"`
	Context   map[string]any `json:"context"`
}

// callTool is registered as a raw handler, so arguments arrive
// unvalidated. Errors returned here become JSON-RPC errors; backend
// failures are reported inside the result with IsError set.
func (s *Server) callTool(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args analyzeRiskArgs
	if raw := req.Params.Arguments; len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	operation, ok := args.Operation.(string)
	if !ok || operation == "" {
		return nil, ErrMissingOperation
	}

	s.logger.Debug().Str("tool", req.Params.Name).Msg("mcp_tool_call")
	report, err := s.assessor.Assess(ctx, assess.Request{Operation: operation, Context: args.Context}, guard.Config{})
	if err != nil {
		s.logger.Warn().Err(err).Msg("tool_call_failed")
		return textResult(fmt.Sprintf("Error analyzing risk: %v", err), true), nil
	}

	text, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return textResult(fmt.Sprintf("Error analyzing risk: %v", err), true), nil
	}
	return textResult(string(text), false), nil
}

func textResult(text string, isError bool) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
		IsError: isError,
	}
}
