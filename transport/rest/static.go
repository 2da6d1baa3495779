package rest

import (
	_ "embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
)

//go:embed static/index.html
var indexHTML []byte

//go:embed static/app.css
var appCSS []byte

//go:embed static/app.js
var appJS []byte

func securityHeaders(w http.ResponseWriter) {
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'")
}

// indexHandler serves the page and makes sure the browser has a session
// cookie before it opens the socket.
func indexHandler(logger *slog.Logger, sessionTTL time.Duration) httprouter.Handle {
	log := logger.With("method", "indexHandler")

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		securityHeaders(w)

		if _, cookie := pkg.SessionFromRequest(r, sessionTTL); cookie != nil {
			http.SetCookie(w, cookie)
			log.Debug("new session cookie set")
		}

		_, _ = w.Write(indexHTML)
	}
}

func assetHandler(contentType string, body []byte) httprouter.Handle {
	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		securityHeaders(w)

		_, _ = w.Write(body)
	}
}
