package assess

// Request describes a proposed agent operation.
type Request struct {
	Operation string         `json:"operation"`
	Context   map[string]any `json:"context,omitempty"`
}

// Payload is the document sent to the classifier for an operation.
type Payload struct {
	UserPrompt string   `json:"userPrompt"`
	Plan       Plan     `json:"plan"`
	Untrusted  []string `json:"untrusted"`
	ToolCall   ToolCall `json:"toolCall"`
}

// Plan lists the file edits the operation intends to make.
type Plan struct {
	Edits []Edit `json:"edits"`
}

// Edit is one planned file change. Content is never sent.
type Edit struct {
	Path      string `json:"path"`
	Content   string `json:"content"`
	Operation string `json:"operation"`
}

// ToolCall names the agent tool the operation would invoke.
type ToolCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

const (
	toolShell     = "shell.run"
	toolFileWrite = "fs.write"
)

// BuildPayload converts a request into the classified document. String
// entries of context.files become replace_file edits; a truthy
// context.command marks the call as a shell invocation.
func BuildPayload(req Request) Payload {
	p := Payload{
		UserPrompt: req.Operation,
		Plan:       Plan{Edits: []Edit{}},
		Untrusted:  []string{},
		ToolCall:   ToolCall{Name: toolFileWrite, Args: req.Context},
	}
	if p.ToolCall.Args == nil {
		p.ToolCall.Args = map[string]any{}
	}

	for _, path := range filePaths(req.Context["files"]) {
		p.Plan.Edits = append(p.Plan.Edits, Edit{Path: path, Operation: "replace_file"})
	}
	if truthy(req.Context["command"]) {
		p.ToolCall.Name = toolShell
	}
	return p
}

func filePaths(v any) []string {
	switch files := v.(type) {
	case []string:
		return files
	case []any:
		paths := make([]string, 0, len(files))
		for _, f := range files {
			if path, ok := f.(string); ok {
				paths = append(paths, path)
			}
		}
		return paths
	default:
		return nil
	}
}

// truthy follows JSON truthiness: null, false, 0 and "" are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}
