// Package textfmt renders parameterised message templates.
//
// Catalog values are written with a doubled-brace convention: "{0}" is a
// placeholder, "{{" is a literal brace and a single quote needs no escaping.
// ConvertEscapes turns such a template into placeholder grammar, and a
// Formatter bound to a language tag renders it.
//
// # Placeholders
//
// A placeholder has the form {index}, {index,type} or {index,type,style}:
//
//	{0}                  argument rendered by its Go type
//	{0,number}           locale decimal, e.g. 1,234.5 or 1.234,5
//	{0,number,integer}   rounded, no fraction digits
//	{0,number,percent}   0.25 renders as 25%
//	{0,number,currency}  locale currency symbol and two fraction digits
//	{0,date[,style]}     short/medium or long/full date
//	{0,time[,style]}     short/medium or long/full time
//	{0,number,#,##0.00}  decimal pattern: digits, grouping, prefix, suffix
//	{0,date,yyyy-MM-dd}  date pattern letters translated to a Go layout
//
// A placeholder whose argument was not supplied is left in the output as
// {index}. A nil argument renders as "null".
//
// # Usage
//
//	f := textfmt.New(language.German)
//	s, err := f.Format("{0} hat {1,number} Punkte", "Anna", 1234.5)
//	// s == "Anna hat 1.234,5 Punkte"
//
// Decimal and percent output comes from golang.org/x/text; currency and
// calendar layouts come from a LocaleFormat, picked with FormatFor unless
// WithLocaleFormat overrides it.
package textfmt
