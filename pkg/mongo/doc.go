// Package mongo connects the MongoDB v2 driver with retry.
package mongo
