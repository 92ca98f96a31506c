// Package database owns the SQLite connection used to persist reading
// progress.
//
//	database/
//	├── database.go   # Connection setup and migrations
//	└── readings/     # Reading events and derived statistics
//
// # Usage
//
//	db, err := database.NewDatabase("./gobiblia.db")
//	repo := readings.NewRepository(db.DB)
//	ok := repo.RecordReading(ctx, "nvi", "gn", 1, "")
//
// The schema is migrated idempotently on every open. A reading is identified
// by (version, book, chapter); see readings.Repository.RecordReading.
package database
