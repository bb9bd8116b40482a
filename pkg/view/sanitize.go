package view

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizePolicyOnce sync.Once
	sanitizePolicy     *bluemonday.Policy
)

// Sanitize strips markup that is unsafe to echo from user-generated content.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	return sanitizer().Sanitize(raw)
}

func sanitizer() *bluemonday.Policy {
	sanitizePolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		sanitizePolicy = policy
	})
	return sanitizePolicy
}
