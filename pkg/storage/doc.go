// Package storage provides byte stores that catalog resources are read from
// and published to.
//
// Every backend implements Storage: Open returns the raw bytes of a named
// resource, Save replaces them and Delete removes them. A missing resource
// is reported with an error matching ErrNotFound, which loaders translate
// into "no catalog for this locale".
//
// Names are relative slash-separated paths such as
// "i18n/messages_de_CH.properties". Names that are absolute or climb out of
// the store root are rejected with ErrInvalidName.
//
// # Backends
//
//	storage.NewFS(embedded)             // read-only, any fs.FS
//	storage.OpenDir("./locales")        // local directory
//	storage.New(storage.Config{...})    // S3-compatible bucket
//	storage.NewRedis(client, "i18n")    // Redis string values
//	storage.NewPostgres(pool)           // catalogs table, see pkg/db
//
// # S3
//
//	store, err := storage.New(storage.Config{
//		Bucket:    "catalogs",
//		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
//		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//		Prefix:    "i18n",
//	})
//
// Objects larger than Config.MaxObjectSize are refused with ErrTooLarge on
// both upload and download.
package storage
