// Package middleware provides HTTP middleware components for the food storage service.
package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// uncompressedPaths are left alone: Prometheus negotiates its own encoding
// and the swagger UI serves pre-sized assets.
var uncompressedPaths = []string{"/metrics", "/swagger/"}

// Compression returns a middleware that gzips responses for clients that accept it.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(uncompressedPaths))
}
