// Package redis connects go-redis clients with retry. The organization key
// cache is its main consumer.
package redis
