// Package i18n resolves localized message catalogs with locale fallback.
//
// A resource family is a set of catalogs sharing a base identifier, one per
// locale: "messages" for the root catalog, "messages_de" for German,
// "messages_de_CH" for Swiss German and so on. Resolving a locale links the
// catalogs that exist into a chain from the most specific locale down to
// the root, and lookups walk that chain until a catalog defines the key.
//
// # Resolving
//
//	loader := i18n.NewStorageLoader(storage.NewFS(locales))
//	r, err := i18n.NewResolver(loader,
//		i18n.WithDefaultLocale(i18n.LocaleKey{Language: "en"}),
//		i18n.WithMissingKeyPolicy(i18n.PolicySentinel),
//		i18n.WithLogger(log),
//	)
//
//	b, err := r.Resolve(ctx, "messages", i18n.MustParseLocaleKey("de_CH"))
//	s, err := b.Format("greeting", user.Name)
//
// Candidates lists the lookup order: the requested key, then with the
// variant dropped, then the language alone, then Root. Locales without a
// catalog are skipped. When only the root catalog exists for the request,
// the default locale is tried as well before settling for the root.
//
// # Missing keys
//
// Under PolicyError, the default, Bundle.Get fails with a *MissingKeyError.
// Under PolicySentinel it returns "???key???" instead. A resolver created
// without WithMissingKeyPolicy follows the process-wide setting, which is
// read on every lookup:
//
//	i18n.SetMissingKeyPolicy(i18n.PolicySentinel)
//	i18n.SetDefaultLocale(i18n.LocaleKey{Language: "de"})
//
// # Loaders
//
//   - StorageLoader decodes key/value text files from any storage backend
//   - YAMLLoader flattens nested YAML files into dot-separated keys
//   - CachedLoader memoizes another loader in a memory or Redis cache
//   - MemoryLoader serves catalogs built in code, handy in tests
//
// # HTTP
//
// ParseAcceptLanguage and MatchAcceptLanguage choose the locale to resolve
// from an Accept-Language header; the middlewares package wires it into request handling, and
// Translator offers lookups that never fail for use in templates.
package i18n
