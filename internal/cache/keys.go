package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"quizforge/internal/domain"
)

const (
	GlobalKeyPrefix = "quizforge"

	ServiceGeneration = "generation"
	ServiceQuiz       = "quiz"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// GenerationParamsKey derives a stable cache key from generation parameters.
// Prompts are deterministic for identical parameters, so two requests with
// the same hash would receive the same prompt and may share a cached result.
func GenerationParamsKey(params domain.GenerationParameters) string {
	fingerprint := strings.Join([]string{
		params.Content,
		params.Topic,
		string(params.QuestionType),
		fmt.Sprintf("%d", params.NumberOfQuestions),
		string(params.Difficulty),
		string(params.Language),
		params.Category,
		params.Instructions,
	}, "\x1f")

	sum := sha256.Sum256([]byte(fingerprint))
	return GenerateCacheKey(ServiceGeneration, "params", hex.EncodeToString(sum[:16]))
}
