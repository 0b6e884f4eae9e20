package storer

import "math"

// CosineDistance is the fixed metric every storer implementation ranks by:
// 1 - cosine similarity, so 0 is identical and 2 is opposite. Mismatched or
// zero vectors are treated as uncorrelated, ranking behind any correlated
// match.
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 1.0
	}

	return 1.0 - dotProduct/(math.Sqrt(normA)*math.Sqrt(normB))
}
