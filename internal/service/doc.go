// Package service contains the mutation services orchestrating every write:
// authorize, order, persist, invalidate, publish. Reads are served here too.
// Each service receives its dependencies (stores, cache, realtime hub) by
// reference at construction; nothing is reached through a global.
package service
