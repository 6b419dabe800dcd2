package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float64{1, 0}, []float64{-1, 0}), 1e-9)

	// 零向量与长度不匹配
	assert.Equal(t, 0.0, Cosine([]float64{0, 0}, []float64{1, 1}))
	assert.Equal(t, 0.0, Cosine([]float64{1}, []float64{1, 2}))
	assert.Equal(t, 0.0, Cosine(nil, nil))
}

func TestJaccard(t *testing.T) {
	assert.InDelta(t, 1.0, Jaccard([]string{"a", "b"}, []string{"a", "b"}), 1e-9)
	assert.InDelta(t, 1.0/3.0, Jaccard([]string{"a", "b"}, []string{"b", "c"}), 1e-9)
	assert.Equal(t, 0.0, Jaccard([]string{"a"}, []string{"b"}))
	assert.Equal(t, 0.0, Jaccard(nil, []string{"a"}))
}

func TestBuildVector(t *testing.T) {
	vec := BuildVector("Best programming language", "vote for your favorite", []string{"tech"})
	assert.Len(t, vec, FeatureDim)

	var sum float64
	for _, v := range vec {
		sum += v
	}
	assert.Greater(t, sum, 0.0)

	// 相同输入产出相同向量
	again := BuildVector("Best programming language", "vote for your favorite", []string{"tech"})
	assert.Equal(t, vec, again)

	// 同话题的两个投票贴比无关投票贴更相似
	a := BuildVector("Go generics", "discussion about golang generics", []string{"tech", "golang"})
	b := BuildVector("Go error handling", "golang error handling styles", []string{"tech", "golang"})
	c := BuildVector("Best pizza topping", "pineapple or pepperoni", []string{"food"})
	assert.Greater(t, Cosine(a, b), Cosine(a, c))
}

func TestRankByScore(t *testing.T) {
	scores := map[string]float64{"a": 1, "b": 3, "c": 2, "d": 3}
	ranked := rankByScore(scores)
	// 同分按 ID 升序保证稳定
	assert.Equal(t, []string{"b", "d", "c", "a"}, ranked)
}
