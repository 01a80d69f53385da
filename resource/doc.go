// Package resource provides process-wide limits on concurrent searches and IO throughput.
package resource
