package middleware

import (
	"net/http"

	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

func Cors(allowedOrigins []string) func(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept", "Content-Type", "Content-Length", "Accept-Encoding",
			DeviceIDHeader, RequestIDHeader,
		},
		ExposedHeaders: []string{
			"Content-Disposition", DeviceIDHeader, RequestIDHeader,
		},
	})
	if len(allowedOrigins) == 0 {
		log.Warnln("CORS: no allowed origins configured, cross-origin requests will be refused")
	}
	return c.Handler
}
