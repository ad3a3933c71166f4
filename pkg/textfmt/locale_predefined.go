package textfmt

import "golang.org/x/text/language"

// FormatEnUS returns the US English conventions.
func FormatEnUS() *LocaleFormat {
	return NewLocaleFormat()
}

// FormatEnGB returns the British English conventions.
func FormatEnGB() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrency("£", SymbolBefore),
		WithDateFormats("02/01/2006", "2 January 2006"),
		WithTimeFormats("15:04", "15:04:05 MST"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

func FormatDeDE() *LocaleFormat {
	return NewLocaleFormat(
		WithSeparators(",", "."),
		WithCurrency("€", SymbolAfter),
		WithDateFormats("02.01.2006", "2. January 2006"),
		WithTimeFormats("15:04", "15:04:05 MST"),
		WithDateTimeFormat("02.01.2006 15:04"),
	)
}

func FormatFrFR() *LocaleFormat {
	return NewLocaleFormat(
		WithSeparators(",", " "),
		WithCurrency("€", SymbolAfter),
		WithDateFormats("02/01/2006", "2 January 2006"),
		WithTimeFormats("15:04", "15:04:05 MST"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

func FormatEsES() *LocaleFormat {
	return NewLocaleFormat(
		WithSeparators(",", "."),
		WithCurrency("€", SymbolAfter),
		WithDateFormats("02/01/2006", "2 January 2006"),
		WithTimeFormats("15:04", "15:04:05 MST"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

func FormatPtBR() *LocaleFormat {
	return NewLocaleFormat(
		WithSeparators(",", "."),
		WithCurrency("R$", SymbolBefore),
		WithDateFormats("02/01/2006", "2 January 2006"),
		WithTimeFormats("15:04", "15:04:05 MST"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

func FormatJaJP() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrency("¥", SymbolBefore),
		WithDateFormats("2006/01/02", "2006年1月2日"),
		WithTimeFormats("15:04", "15:04:05 MST"),
		WithDateTimeFormat("2006/01/02 15:04"),
	)
}

func FormatZhCN() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrency("¥", SymbolBefore),
		WithDateFormats("2006-01-02", "2006年1月2日"),
		WithTimeFormats("15:04", "15:04:05 MST"),
		WithDateTimeFormat("2006-01-02 15:04"),
	)
}

func FormatKoKR() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrency("₩", SymbolBefore),
		WithDateFormats("2006.01.02", "2006년 1월 2일"),
		WithTimeFormats("15:04", "15:04:05 MST"),
		WithDateTimeFormat("2006.01.02 15:04"),
	)
}

func FormatPlPL() *LocaleFormat {
	return NewLocaleFormat(
		WithSeparators(",", " "),
		WithCurrency("zł", SymbolAfter),
		WithDateFormats("02.01.2006", "2 January 2006"),
		WithTimeFormats("15:04", "15:04:05 MST"),
		WithDateTimeFormat("02.01.2006 15:04"),
	)
}

func FormatRuRU() *LocaleFormat {
	return NewLocaleFormat(
		WithSeparators(",", " "),
		WithCurrency("₽", SymbolAfter),
		WithDateFormats("02.01.2006", "2 January 2006"),
		WithTimeFormats("15:04", "15:04:05 MST"),
		WithDateTimeFormat("02.01.2006 15:04"),
	)
}

func FormatArSA() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrency("SAR", SymbolAfter),
		WithDateFormats("02/01/2006", "2 January 2006"),
		WithTimeFormats("3:04 PM", "3:04:05 PM MST"),
		WithDateTimeFormat("02/01/2006 3:04 PM"),
	)
}

var (
	byRegion = map[string]func() *LocaleFormat{
		"en-US": FormatEnUS,
		"en-GB": FormatEnGB,
		"de-DE": FormatDeDE,
		"fr-FR": FormatFrFR,
		"es-ES": FormatEsES,
		"pt-BR": FormatPtBR,
		"ja-JP": FormatJaJP,
		"zh-CN": FormatZhCN,
		"ko-KR": FormatKoKR,
		"pl-PL": FormatPlPL,
		"ru-RU": FormatRuRU,
		"ar-SA": FormatArSA,
	}
	byLanguage = map[string]func() *LocaleFormat{
		"en": FormatEnUS,
		"de": FormatDeDE,
		"fr": FormatFrFR,
		"es": FormatEsES,
		"pt": FormatPtBR,
		"ja": FormatJaJP,
		"zh": FormatZhCN,
		"ko": FormatKoKR,
		"pl": FormatPlPL,
		"ru": FormatRuRU,
		"ar": FormatArSA,
	}
)

// FormatFor picks the predefined conventions closest to tag: an exact
// language and region match first, then the language alone, then US English.
func FormatFor(tag language.Tag) *LocaleFormat {
	base, _ := tag.Base()
	region, conf := tag.Region()
	if conf != language.No {
		if f, ok := byRegion[base.String()+"-"+region.String()]; ok {
			return f()
		}
	}
	if f, ok := byLanguage[base.String()]; ok {
		return f()
	}
	return FormatEnUS()
}
