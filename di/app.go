package di

import (
	"lodge/internal/workers"
	"lodge/transport/http"
)

// App bundles the long-running components of the service.
type App struct {
	HTTP    *http.HTTP
	Sweeper *workers.Sweeper
}
