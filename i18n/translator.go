package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for error codes. data carries the
// values substituted for {placeholders} in the message (for example
// "path", "expected", "actual" or "reason").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var templates = map[string]map[string]string{
	"en": {
		"invalid_type":     "invalid type at {path}: expected {expected}, found {actual}",
		"key_path_missing": "no value at {path}",
		"data_corrupted":   "corrupted data at {path}: {reason}",
		"parse_error":      "malformed JSON: {reason}",
		"duplicate_key":    "duplicate key at {path}",
		"max_depth":        "max depth exceeded at {path}",
		"truncated":        "max bytes exceeded",
	},
	"ja": {
		"invalid_type":     "{path} の型が不正です: {expected} を期待しましたが {actual} でした",
		"key_path_missing": "{path} に値がありません",
		"data_corrupted":   "{path} のデータが不正です: {reason}",
		"parse_error":      "JSON の解析エラー: {reason}",
		"duplicate_key":    "{path} のキーが重複しています",
		"max_depth":        "{path} で最大深さを超えました",
		"truncated":        "最大バイト数を超えました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := templates[t.lang][code]
	if !ok {
		return code
	}
	return expand(msg, data)
}

func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().tr.Message(code, data) }
