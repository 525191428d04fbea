package provider

import "github.com/heartmarshall/amistad-translator/internal/domain"

// RegionalCode returns the code providers that distinguish Chinese variants
// expect. Simplified Chinese is assumed.
func RegionalCode(l domain.Language) string {
	if l.Normalize() == domain.LanguageZH {
		return "zh-CN"
	}
	return l.Normalize().String()
}
