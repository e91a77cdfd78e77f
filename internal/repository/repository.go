// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist, or update
// data, abstracting SQL logic away from the service layer. Rows come
// back as dynamic records (transform.Value trees) so the boundary
// transforms can run on them uniformly; every read passes through the
// egress materializer before leaving this package.
package repository
