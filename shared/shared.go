package shared

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"heritage/shared/cache"
	"heritage/shared/dto"
)

// BuildCacheKey joins the prefix and parts into a redis key.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a cache key from pagination plus any extra
// filter fragments so distinct listings never collide.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, fragments ...string) string {
	key := fmt.Sprintf("%s:p%d:l%d:%s:%s", prefix, params.Page, params.Limit, params.SortBy, params.SortDir)

	if len(fragments) > 0 {
		key += ":" + strings.Join(fragments, ":")
	}

	return key
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, store cache.RedisCache, prefix string) {
	if err := store.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// UpperTrim normalizes a free-entry field the way the booking sheets store
// them: trimmed and uppercased.
func UpperTrim(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// Dedupe removes repeated values, keeping the first occurrence in order.
func Dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))

	for _, value := range values {
		if seen[value] {
			continue
		}

		seen[value] = true
		result = append(result, value)
	}

	return result
}
