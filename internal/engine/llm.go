package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// ErrLLMDisabled is returned when no LLM client is configured.
var ErrLLMDisabled = errors.New("llm: not configured")

const describeTranscriptChars = 4000

// LLMStructuredOutput is the JSON shape requested from the model.
type LLMStructuredOutput struct {
	Answer string `json:"answer"`
}

// DescribeInput carries what the model may use to draft a description.
type DescribeInput struct {
	Title       string
	Provider    string
	Duration    string
	Description string
	Transcript  string
	MaxChars    int
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLM sends a short-form prompt and strips code fences from the reply.
func CallLLM(ctx context.Context, prompt string) (string, error) {
	if cfg.LLMClient == nil {
		return "", ErrLLMDisabled
	}
	metrics.LLMCalls.Add(1)
	resp, err := cfg.LLMClient.Complete(ctx, "", prompt,
		llm.WithChatTemperature(0.4),
		llm.WithChatMaxTokens(400),
	)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	return stripFences(resp), nil
}

func buildDescribePrompt(in DescribeInput) string {
	maxChars := in.MaxChars
	if maxChars <= 0 {
		maxChars = cfg.DescriptionMaxChars
	}
	if maxChars <= 0 {
		maxChars = 200
	}
	orNone := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "(none)"
		}
		return s
	}
	return fmt.Sprintf(describeVideoPrompt, maxChars,
		orNone(in.Title), orNone(in.Provider), orNone(in.Duration), orNone(in.Description),
		orNone(TruncateRunes(in.Transcript, describeTranscriptChars, "...")))
}

// DraftDescription asks the LLM for a short description of a video. The
// result is cut at a word boundary to MaxChars.
func DraftDescription(ctx context.Context, in DescribeInput) (string, error) {
	if in.Title == "" && in.Transcript == "" {
		return "", errors.New("describe: title or transcript is required")
	}
	raw, err := CallLLM(ctx, buildDescribePrompt(in))
	if err != nil {
		return "", fmt.Errorf("describe: %w", err)
	}

	answer := raw
	var out LLMStructuredOutput
	if err := json.Unmarshal([]byte(raw), &out); err == nil && out.Answer != "" {
		answer = out.Answer
	} else if a := ExtractJSONAnswer(raw); a != "" {
		answer = a
	}

	maxChars := in.MaxChars
	if maxChars <= 0 {
		maxChars = cfg.DescriptionMaxChars
	}
	if maxChars > 0 {
		answer = TruncateAtWord(answer, maxChars)
	}
	return strings.TrimSpace(answer), nil
}

// ExtractJSONAnswer extracts the "answer" field from malformed JSON
// where the value may contain unescaped newlines or special characters.
func ExtractJSONAnswer(raw string) string {
	prefix := `"answer"`
	idx := strings.Index(raw, prefix)
	if idx < 0 {
		return ""
	}
	rest := raw[idx+len(prefix):]
	rest = strings.TrimSpace(rest)
	if len(rest) == 0 || rest[0] != ':' {
		return ""
	}
	rest = strings.TrimSpace(rest[1:])
	if len(rest) == 0 || rest[0] != '"' {
		return ""
	}
	rest = rest[1:]

	var sb strings.Builder
	for i := 0; i < len(rest); i++ {
		if rest[i] == '\\' && i+1 < len(rest) {
			if rest[i+1] == '"' {
				sb.WriteByte('"')
				i++
				continue
			}
			if rest[i+1] == 'n' {
				sb.WriteByte('\n')
				i++
				continue
			}
			sb.WriteByte(rest[i])
			continue
		}
		if rest[i] == '"' {
			return sb.String()
		}
		sb.WriteByte(rest[i])
	}
	return sb.String()
}
