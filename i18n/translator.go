package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "kind").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "schema_error":
			return "シェイプとして解釈できない値です"
		case "invalid_length":
			return "要素数が不正です"
		case "unknown_variant":
			return "未知の列挙値です"
		case "format_error":
			return "メタデータの形式を判別できません"
		case "invalid_type":
			return "型が不正です"
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			return "キーが重複しています"
		case "too_deep":
			return "ネストが深すぎます"
		}
	default: // "en"
		switch code {
		case "schema_error":
			return "value does not fit a shape"
		case "invalid_length":
			return "invalid length"
		case "unknown_variant":
			return "unknown variant"
		case "format_error":
			return "metadata matches neither the s2tilejson nor the tilejson format"
		case "invalid_type":
			return "invalid type"
		case "parse_error":
			return "parse error"
		case "duplicate_key":
			return "duplicate key"
		case "too_deep":
			return "maximum nesting depth exceeded"
		}
	}
	return code
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
