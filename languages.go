package gotrans

import "strings"

// LanguageNames maps language codes as accepted by translate-shell to
// human-readable names. Used to phrase prompts for LLM-backed engines.
var LanguageNames = map[string]string{
	"ar":    "Arabic",
	"bg":    "Bulgarian",
	"cs":    "Czech",
	"da":    "Danish",
	"de":    "German",
	"el":    "Greek",
	"en":    "English",
	"es":    "Spanish",
	"fa":    "Persian",
	"fi":    "Finnish",
	"fr":    "French",
	"he":    "Hebrew",
	"hi":    "Hindi",
	"hu":    "Hungarian",
	"id":    "Indonesian",
	"it":    "Italian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"nl":    "Dutch",
	"no":    "Norwegian",
	"pl":    "Polish",
	"pt":    "Portuguese",
	"pt-BR": "Portuguese (Brazil)",
	"pt-PT": "Portuguese (Portugal)",
	"ro":    "Romanian",
	"ru":    "Russian",
	"sk":    "Slovak",
	"sv":    "Swedish",
	"th":    "Thai",
	"tr":    "Turkish",
	"uk":    "Ukrainian",
	"vi":    "Vietnamese",
	"zh-CN": "Chinese (Simplified)",
	"zh-TW": "Chinese (Traditional)",
}

// GetLanguageName returns the human-readable name for a language code.
// Regional variants fall back to their base language; unknown codes are
// returned unchanged.
func GetLanguageName(code string) string {
	normalized := NormalizeLanguage(code)
	if name, ok := LanguageNames[normalized]; ok {
		return name
	}
	if base, _, found := strings.Cut(normalized, "-"); found {
		if name, ok := LanguageNames[base]; ok {
			return name
		}
	}
	return code
}

// NormalizeLanguage rewrites "zh_cn" style codes as "zh-CN". It is only used
// for display; cache keys and engine arguments keep the caller's code verbatim.
func NormalizeLanguage(code string) string {
	code = strings.ReplaceAll(code, "_", "-")
	base, region, found := strings.Cut(code, "-")
	if !found {
		return strings.ToLower(code)
	}
	return strings.ToLower(base) + "-" + strings.ToUpper(region)
}
