// Package postgres implements the store interfaces against PostgreSQL using
// the pgx stdlib driver. Rank assignment for columns and tasks happens inside
// the INSERT statement itself, so appends are atomic at the database and two
// concurrent creators can never compute the same rank.
package postgres
