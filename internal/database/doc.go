// Package database provides the sqlite-backed catalog store.
//
// The Database type owns the gorm connection, runs migrations, and seeds the
// role table. Domain-specific operations live in the subpackages (books,
// reviews, users, tokens), each exposing a Repository over the shared
// *gorm.DB handle.
package database
