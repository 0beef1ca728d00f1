package classify

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/model"
)

var fencePattern = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// nullable records whether a JSON key was present, so that an explicit
// null can be told apart from a missing key.
type nullable struct {
	present bool
	value   *string
}

func (n *nullable) UnmarshalJSON(data []byte) error {
	n.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.value = nil
		return nil
	}
	return json.Unmarshal(data, &n.value)
}

type wireClassification struct {
	File         *string  `json:"file" validate:"required"`
	Function     *string  `json:"function" validate:"required"`
	IsUserFacing *bool    `json:"isUserFacing" validate:"required"`
	Type         *string  `json:"type" validate:"required,oneof=cli-command api-endpoint main event-handler export internal test"`
	Description  *string  `json:"description" validate:"required"`
	UserAction   nullable `json:"userAction"`
	Confidence   *float64 `json:"confidence" validate:"required,gte=0,lte=1"`
}

type wireResponse struct {
	Classifications []wireClassification `json:"classifications" validate:"required,dive"`
}

// ExtractJSON returns the body of the first markdown code fence in text, or
// text itself when there is none, trimmed of surrounding whitespace.
func ExtractJSON(text string) string {
	if strings.Contains(text, "```") {
		if m := fencePattern.FindStringSubmatch(text); m != nil {
			text = m[1]
		}
	}
	return strings.TrimSpace(text)
}

// ParseResponse decodes and validates a model answer. Every field must be
// present; userAction may be null.
func ParseResponse(text string) ([]model.EntryPointClassification, error) {
	body := ExtractJSON(text)
	if body == "" {
		return nil, errs.New(errs.ErrCodeInvalidResponse, "empty response from model")
	}

	var wire wireResponse
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidResponse, err, "model response is not valid JSON")
	}
	if err := model.Validate(wire); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidResponse, err, "invalid model response format")
	}

	out := make([]model.EntryPointClassification, len(wire.Classifications))
	for i, w := range wire.Classifications {
		if !w.UserAction.present {
			return nil, errs.New(errs.ErrCodeInvalidResponse, "invalid model response format: classification %d has no userAction", i)
		}
		out[i] = model.EntryPointClassification{
			File:         *w.File,
			Function:     *w.Function,
			IsUserFacing: *w.IsUserFacing,
			Type:         model.EntryPointType(*w.Type),
			Description:  *w.Description,
			UserAction:   w.UserAction.value,
			Confidence:   *w.Confidence,
		}
	}
	return out, nil
}
