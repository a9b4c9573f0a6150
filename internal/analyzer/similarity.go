package analyzer

import (
	"math"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// suggestThreshold 低于此相似度不给出建议
const suggestThreshold = 0.7

// NameSimilarity 计算列名相似度（0-1）
func NameSimilarity(name1, name2 string) float64 {
	n1 := strings.ToLower(name1)
	n2 := strings.ToLower(name2)

	// 完全匹配
	if n1 == n2 {
		return 1.0
	}

	// 包含关系
	if n1 != "" && n2 != "" && (strings.Contains(n1, n2) || strings.Contains(n2, n1)) {
		return 0.8
	}

	maxLen := math.Max(float64(len([]rune(n1))), float64(len([]rune(n2))))
	if maxLen == 0 {
		return 0
	}

	distance := levenshtein.DistanceForStrings([]rune(n1), []rune(n2), levenshtein.DefaultOptions)
	similarity := 1.0 - float64(distance)/maxLen
	if similarity > suggestThreshold {
		return similarity
	}
	return 0
}

// SuggestColumn 在候选列中找出与 name 最相近的列名
func SuggestColumn(name string, candidates []string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		if score := NameSimilarity(name, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore > 0
}
