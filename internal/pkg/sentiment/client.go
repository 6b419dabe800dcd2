package sentiment

import (
	"Pollhive/internal/api/config"
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Analyzer 情感分析器。返回评分与标签，评论创建后异步调用。
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*float64, string, error)
}

// HTTPAnalyzer 通过外部情感分析服务打分
type HTTPAnalyzer struct {
	client  *resty.Client
	baseURL string
}

func NewHTTPAnalyzer(cfg *config.Config) *HTTPAnalyzer {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Sentiment.Timeout) * time.Second)

	return &HTTPAnalyzer{
		client:  client,
		baseURL: cfg.Sentiment.URL,
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

func (a *HTTPAnalyzer) Analyze(ctx context.Context, text string) (*float64, string, error) {
	var result analyzeResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(analyzeRequest{Text: text}).
		SetResult(&result).
		Post(a.baseURL)
	if err != nil {
		return nil, "", errors.Wrap(err, "sentiment request failed")
	}
	if resp.IsError() {
		return nil, "", errors.Errorf("sentiment service status %d", resp.StatusCode())
	}

	if result.Label == "" {
		result.Label = labelOf(result.Score)
	}
	return &result.Score, result.Label, nil
}

func labelOf(score float64) string {
	switch {
	case score > 0.2:
		return "positive"
	case score < -0.2:
		return "negative"
	default:
		return "neutral"
	}
}
