// Package service implements the business rules of the contact backend:
// registration uniqueness, credential checks, ownership scoping and search
// pagination. Services take their stores as constructor dependencies so
// tests can run against isolated instances.
package service
