// Package catalog implements a product catalog service with a token based
// authentication core: bcrypt credential hashing, JWT issuance and validation,
// and a request scoped resolver that gates mutating product operations.
//
// The authentication core is usable on its own; the HTTP controllers and
// repositories wire it to a bun backed SQLite store.
package catalog
