// Package domain defines the core business entities of the Plank workspace
// engine: users, boards, columns, tasks, and board memberships.
package domain
