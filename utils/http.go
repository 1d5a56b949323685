// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by artwork downloads.
var HTTPClient = &http.Client{
	Timeout: 60 * time.Second,
}
