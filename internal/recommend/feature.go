package recommend

import (
	"hash/fnv"
	"strings"
)

// FeatureDim 特征向量维度，投票贴创建后不再变化
const FeatureDim = 64

// BuildVector 基于词袋哈希构造定长特征向量。
// 话题权重高于正文词，保证同话题投票贴的相似度更高。
func BuildVector(title, description string, topics []string) []float64 {
	vec := make([]float64, FeatureDim)

	for _, token := range tokenize(title) {
		vec[bucket(token)] += 2
	}
	for _, token := range tokenize(description) {
		vec[bucket(token)]++
	}
	for _, topic := range topics {
		vec[bucket(strings.ToLower(topic))] += 3
	}

	return vec
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func bucket(token string) int {
	h := fnv.New32a()
	h.Write([]byte(token))
	return int(h.Sum32() % FeatureDim)
}
