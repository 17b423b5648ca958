// Package store defines the persistence interfaces and errors shared by
// all storage backends.
package store
