package jwt

import "time"

// getString safely extracts string value from claims
func getString(claims map[string]any, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

// getStringSlice safely extracts string slice from claims
func getStringSlice(claims map[string]any, key string) []string {
	switch val := claims[key].(type) {
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	case []string:
		return val
	case string:
		if val != "" {
			return []string{val}
		}
	}
	return []string{}
}

// GetSubjectFromToken extracts subject (sub) from token claims
func GetSubjectFromToken(claims map[string]any) string {
	return getString(claims, ClaimSubject)
}

// GetUsernameFromToken extracts the provider user handle, preferring
// cognito:username, then username (access tokens), then sub.
func GetUsernameFromToken(claims map[string]any) string {
	for _, key := range []string{ClaimUsername, ClaimPlainUsername, ClaimSubject} {
		if v := getString(claims, key); v != "" {
			return v
		}
	}
	return ""
}

// GetGroupsFromToken extracts group memberships
func GetGroupsFromToken(claims map[string]any) []string {
	return getStringSlice(claims, ClaimGroups)
}

// GetExpirationFromToken extracts expiration time from token claims
func GetExpirationFromToken(claims map[string]any) time.Time {
	switch exp := claims[ClaimExpiry].(type) {
	case float64:
		if exp > 0 {
			return time.Unix(int64(exp), 0)
		}
	case int64:
		if exp > 0 {
			return time.Unix(exp, 0)
		}
	}
	return time.Time{}
}

// GetTokenUse returns "id" or "access" for provider tokens
func GetTokenUse(claims map[string]any) string {
	return getString(claims, ClaimTokenUse)
}
