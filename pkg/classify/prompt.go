package classify

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tldrviz/pkg/model"
)

const promptHeader = `You are analyzing a codebase to identify user-facing entry points.

For each function below, classify whether it's a user-facing entry point and what type.

Entry point types:
- cli-command: Handles a CLI command (main, run, execute patterns)
- api-endpoint: HTTP endpoint handler
- main: Application main entry point
- event-handler: Event/callback handler (onClick, onMessage, etc.)
- export: Just an exported function, not a true entry point
- internal: Internal helper that happens to have no callers
- test: Test function or test helper

For each entry, provide:
- isUserFacing: true if a real user would trigger this function
- type: one of the types above
- description: 1-sentence description of what this function does
- userAction: how a user triggers this (e.g., "runs 'app build'" or "calls POST /api/foo") or null if not user-facing
- confidence: 0-1 how confident you are

ENTRIES TO CLASSIFY:
`

const promptFooter = `
Respond with a JSON array of classifications in this exact format:
{
  "classifications": [
    {
      "file": "path/to/file.ts",
      "function": "functionName",
      "isUserFacing": true,
      "type": "cli-command",
      "description": "Runs the main pipeline...",
      "userAction": "runs 'app build'",
      "confidence": 0.9
    }
  ]
}

Only return the JSON, no other text.`

// BuildPrompt renders the classification instructions for entries.
func BuildPrompt(entries []EntryContext) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	for i, e := range entries {
		calls := "(none)"
		if len(e.Callees) > 0 {
			calls = strings.Join(e.Callees, ", ")
		}
		fmt.Fprintf(&b, "\n%d. Function: %s\n   File: %s\n   Calls: %s\n", i+1, e.Function, e.File, calls)
	}
	b.WriteString(promptFooter)
	return b.String()
}

// responseSchema is the strict JSON schema requested from providers that
// support structured output.
const responseSchema = `{
  "type": "object",
  "properties": {
    "classifications": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "file": {"type": "string"},
          "function": {"type": "string"},
          "isUserFacing": {"type": "boolean"},
          "type": {"type": "string", "enum": %s},
          "description": {"type": "string"},
          "userAction": {"type": ["string", "null"]},
          "confidence": {"type": "number"}
        },
        "required": ["file", "function", "isUserFacing", "type", "description", "userAction", "confidence"],
        "additionalProperties": false
      }
    }
  },
  "required": ["classifications"],
  "additionalProperties": false
}`

// SchemaName names the structured output format.
const SchemaName = "entry_point_classifications"

// ResponseSchema returns the JSON schema of a valid response.
func ResponseSchema() []byte {
	quoted := make([]string, len(model.EntryPointTypes))
	for i, t := range model.EntryPointTypes {
		quoted[i] = `"` + string(t) + `"`
	}
	return fmt.Appendf(nil, responseSchema, "["+strings.Join(quoted, ", ")+"]")
}
