package recommend

import (
	"Pollhive/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	ids []string
	err error
}

func (s *stubStrategy) Recommend(_ context.Context, _ *model.User, n int) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.ids) > n {
		return s.ids[:n], nil
	}
	return s.ids, nil
}

type recordingStrategy struct {
	ids       []string
	requested []int
}

func (s *recordingStrategy) Recommend(_ context.Context, _ *model.User, n int) ([]string, error) {
	s.requested = append(s.requested, n)
	if len(s.ids) > n {
		return s.ids[:n], nil
	}
	return s.ids, nil
}

func TestMerge(t *testing.T) {
	merged := Merge([]string{"a", "b"}, []string{"b", "c"}, 5)
	assert.Equal(t, []string{"a", "b", "c"}, merged)

	merged = Merge([]string{"a", "b", "c"}, []string{"d", "e"}, 4)
	assert.Equal(t, []string{"a", "b", "c", "d"}, merged)

	merged = Merge(nil, []string{"x"}, 3)
	assert.Equal(t, []string{"x"}, merged)

	assert.Empty(t, Merge(nil, nil, 3))
}

func TestHybridGeneratePadsFromFallback(t *testing.T) {
	h := NewHybrid(
		&stubStrategy{ids: []string{"a", "b"}},
		&stubStrategy{ids: []string{"b", "c"}},
		&stubStrategy{ids: []string{"d", "e", "f", "g"}},
	)

	got, err := h.Generate(context.Background(), &model.User{UserID: "u1"}, 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)

	seen := make(map[string]struct{})
	for _, id := range got {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

// 兜底请求的条数是缺口，不是完整的 n
func TestHybridGeneratePadRequestsShortfall(t *testing.T) {
	fallback := &recordingStrategy{ids: []string{"r1", "r2", "r3", "r4", "r5"}}
	h := NewHybrid(
		&stubStrategy{ids: []string{"a", "b", "c"}},
		&stubStrategy{ids: []string{"b"}},
		fallback,
	)

	got, err := h.Generate(context.Background(), &model.User{UserID: "u1"}, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, fallback.requested)
	assert.Equal(t, []string{"a", "b", "c", "r1", "r2"}, got)
}

// 个性化候选已满时不触碰兜底
func TestHybridGenerateTruncates(t *testing.T) {
	h := NewHybrid(
		&stubStrategy{ids: []string{"a", "b", "c"}},
		&stubStrategy{ids: []string{"d", "e", "f"}},
		&stubStrategy{err: errors.New("fallback should not run")},
	)

	got, err := h.Generate(context.Background(), &model.User{UserID: "u1"}, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

// 单一策略失败只降级，不中断
func TestHybridGenerateDegrades(t *testing.T) {
	h := NewHybrid(
		&stubStrategy{err: errors.New("cf down")},
		&stubStrategy{err: errors.New("cbf down")},
		&stubStrategy{ids: []string{"x", "y"}},
	)

	got, err := h.Generate(context.Background(), &model.User{UserID: "u1"}, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)
}

// 未知用户直接走兜底，不碰个性化策略
func TestHybridGenerateUnknownUser(t *testing.T) {
	h := NewHybrid(
		&stubStrategy{err: errors.New("cf should not run")},
		&stubStrategy{err: errors.New("cbf should not run")},
		&stubStrategy{ids: []string{"t1", "t2", "t3"}},
	)

	got, err := h.Generate(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2", "t3"}, got)
}

func TestHybridGenerateZeroN(t *testing.T) {
	h := NewHybrid(&stubStrategy{}, &stubStrategy{}, &stubStrategy{})
	got, err := h.Generate(context.Background(), &model.User{}, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
