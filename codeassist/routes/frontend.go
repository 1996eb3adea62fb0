package routes

import (
	"net/http"
	"os"
)

// FrontendHandler serves the static frontend when the directory exists, and
// nil otherwise so the caller can skip the mount.
func FrontendHandler(dir string) http.Handler {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}
	return http.FileServer(http.Dir(dir))
}
