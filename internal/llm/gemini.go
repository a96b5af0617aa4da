package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Gemini 基于 google.golang.org/genai 实现 Generator
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: new gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

func (g *Gemini) Generate(ctx context.Context, req Request) (*Result, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.Grounded {
		cfg.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("llm: generate: %w", err)
	}

	return &Result{
		Text:      extractText(resp),
		Citations: extractCitations(resp),
	}, nil
}

// IsRetryable 判断是否为限流/暂不可用类错误，这类错误值得退避后重试
func IsRetryable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests ||
			apiErr.Code == http.StatusServiceUnavailable
	}
	return false
}

// extractText 取第一个候选里的文本部分；候选为空时兜底扫其余候选
func extractText(res *genai.GenerateContentResponse) string {
	if res == nil || len(res.Candidates) == 0 {
		return ""
	}
	for _, c := range res.Candidates {
		if c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if p.Text != "" {
				b.WriteString(p.Text)
			}
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			return s
		}
	}
	return ""
}

// extractCitations 从检索元数据里取 {title, uri} 引用对
func extractCitations(res *genai.GenerateContentResponse) []Citation {
	if res == nil || len(res.Candidates) == 0 {
		return nil
	}
	gm := res.Candidates[0].GroundingMetadata
	if gm == nil {
		return nil
	}
	var out []Citation
	for _, chunk := range gm.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		if chunk.Web.URI == "" {
			continue
		}
		title := strings.TrimSpace(chunk.Web.Title)
		if title == "" {
			title = chunk.Web.URI
		}
		out = append(out, Citation{Title: title, URI: chunk.Web.URI})
	}
	return out
}

var _ Generator = &Gemini{}
