package service

import "strings"

const cacheKeyPrefix = "vitalink"

// cacheKey builds a namespaced cache key: vitalink:<area>:<object>:<id>.
func cacheKey(area, object, identifier string) string {
	return strings.Join([]string{cacheKeyPrefix, area, object, identifier}, ":")
}
