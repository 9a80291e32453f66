package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional parameters to embed in the message (for example,
// "expected" or "got"); templates reference them as {name}.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			tmpl = "{expected} が必要ですが {got} が与えられました"
		case "invalid_literal":
			tmpl = "リテラル {expected} が必要ですが {got} が与えられました"
		case "invalid_nullable":
			tmpl = "null が必要ですが {got} が与えられました"
		case "pattern":
			tmpl = "{got} はパターン {expected} に一致しません"
		case "unknown_key":
			tmpl = "余分なプロパティ {key} は許可されていません"
		case "invalid_length":
			tmpl = "長さ {expected} の配列が必要ですが長さは {got} です"
		case "too_long":
			tmpl = "要素は最大 {expected} 個ですが {got} 個あります"
		case "discriminator_unknown":
			tmpl = "不正な判別値 {got} です。次のいずれかが必要です: {expected}"
		case "cast_error":
			tmpl = "{message}"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			tmpl = "expected {expected}, got {got}"
		case "invalid_literal":
			tmpl = "expected literal {expected}, got {got}"
		case "invalid_nullable":
			tmpl = "expected nullable, got {got}"
		case "pattern":
			tmpl = "value {got} does not match pattern {expected}"
		case "unknown_key":
			tmpl = "extra property {key} is not allowed"
		case "invalid_length":
			tmpl = "expected array of length {expected}, got length {got}"
		case "too_long":
			tmpl = "expected at most {expected} elements, got {got}"
		case "discriminator_unknown":
			tmpl = "invalid discriminant value {got}, expected one of {expected}"
		case "cast_error":
			tmpl = "{message}"
		}
	}
	if tmpl == "" {
		return code
	}
	return interpolate(tmpl, data)
}

// interpolate substitutes {name} placeholders; unknown placeholders stay as-is.
func interpolate(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	out := tmpl
	for k, v := range data {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
