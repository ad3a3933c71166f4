// Package middlewares holds the net/http middleware of the lingua server.
//
//	r := chi.NewRouter()
//	r.Use(middlewares.RequestID)
//	r.Use(middlewares.Recover(log))
//	r.Use(middlewares.Locale(resolver, "messages",
//		middlewares.WithAvailableLocales(available...),
//		middlewares.WithLocaleSources(middlewares.FromQuery("lang"), middlewares.FromCookie("lang")),
//	))
//
//	r.Get("/hello", func(w http.ResponseWriter, r *http.Request) {
//		tr := middlewares.TranslatorFromContext(r.Context())
//		fmt.Fprint(w, tr.T("greeting", "Anna"))
//	})
//
// Locale picks the request locale from the configured sources, then from
// Accept-Language, resolves the bundle and stores an i18n.Translator in the
// request context.
package middlewares
