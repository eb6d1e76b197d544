// Package languages holds the static display-language table and best-effort
// language detection for message text.
package languages

import "github.com/abadojack/whatlanggo"

// Language pairs a code with its native display name.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Auto is the sentinel language code that asks the server to detect the
// sender's language from message text.
const Auto = "auto"

// supported lists the display languages in presentation order.
var supported = []Language{
	{Code: "vi", Name: "Tiếng Việt"},
	{Code: "en", Name: "English"},
	{Code: "ja", Name: "日本語"},
	{Code: "zh", Name: "中文"},
	{Code: "ko", Name: "한국어"},
	{Code: "fr", Name: "Français"},
	{Code: "de", Name: "Deutsch"},
	{Code: "es", Name: "Español"},
	{Code: "th", Name: "ไทย"},
	{Code: "id", Name: "Bahasa Indonesia"},
	{Code: "ru", Name: "Русский"},
	{Code: "pt", Name: "Português"},
	{Code: "it", Name: "Italiano"},
	{Code: "ar", Name: "العربية"},
	{Code: "hi", Name: "हिन्दी"},
	{Code: "bn", Name: "বাংলা"},
	{Code: "ms", Name: "Bahasa Melayu"},
	{Code: "nl", Name: "Nederlands"},
	{Code: "pl", Name: "Polski"},
	{Code: "tr", Name: "Türkçe"},
}

var codes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(supported))
	for _, l := range supported {
		m[l.Code] = struct{}{}
	}
	return m
}()

// List returns the supported languages in presentation order.
func List() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Supported reports whether code is a known display language.
func Supported(code string) bool {
	_, ok := codes[code]
	return ok
}

// Detect returns the supported language code best matching text, or "en"
// when detection is unreliable or the detected language is not supported.
func Detect(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return "en"
	}
	code := info.Lang.Iso6391()
	if Supported(code) {
		return code
	}
	return "en"
}
