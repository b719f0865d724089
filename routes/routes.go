package routes

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blogger/cache"
	"blogger/handlers"
	"blogger/logger"
	"blogger/monitoring"
)

// Options configures the parts of the route table that depend on deployment.
type Options struct {
	// IndexCache stores the rendered index page. Nil disables caching.
	IndexCache cache.PageCache
	// MediaRoot and MediaURL serve local uploads. Empty MediaRoot disables it.
	MediaRoot string
	MediaURL  string
	// CSRFKey enables CSRF protection when set.
	CSRFKey       []byte
	SecureCookies bool
}

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(h *handlers.Handler, opts Options) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(h.NotFound)
	router.Use(h.Recover, monitoring.InstrumentHandler, logger.AccessLog, h.Authenticate)

	// Post routes
	var index http.Handler = http.HandlerFunc(h.Index)
	if opts.IndexCache != nil {
		index = cache.Middleware(opts.IndexCache, "index", handlers.IndexCacheKey)(index)
	}
	router.Handle("/", index).Methods("GET")
	router.HandleFunc("/group/{slug}/", h.GroupPosts).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}/", h.PostDetail).Methods("GET")
	router.HandleFunc("/create/", h.LoginRequired(h.PostCreate)).Methods("GET", "POST")
	router.HandleFunc("/posts/{id:[0-9]+}/edit/", h.LoginRequired(h.PostEdit)).Methods("GET", "POST")
	router.HandleFunc("/posts/{id:[0-9]+}/delete/", h.LoginRequired(h.PostDelete)).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}/comment/", h.LoginRequired(h.AddComment)).Methods("POST")

	// Follow routes
	router.HandleFunc("/follow/", h.LoginRequired(h.FollowIndex)).Methods("GET")
	router.HandleFunc("/profile/{username}/", h.Profile).Methods("GET")
	router.HandleFunc("/profile/{username}/follow/", h.LoginRequired(h.ProfileFollow)).Methods("GET")
	router.HandleFunc("/profile/{username}/unfollow/", h.LoginRequired(h.ProfileUnfollow)).Methods("GET")

	// Auth routes
	router.HandleFunc("/auth/signup/", h.Signup).Methods("GET", "POST")
	router.HandleFunc("/auth/login/", h.Login).Methods("GET", "POST")
	router.HandleFunc("/auth/logout/", h.Logout).Methods("GET", "POST")

	// Add metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	if opts.MediaRoot != "" {
		prefix := opts.MediaURL
		if prefix == "" {
			prefix = "/media/"
		}
		router.PathPrefix(prefix).Handler(mediaHandler(prefix, opts.MediaRoot)).Methods("GET")
	}

	if len(opts.CSRFKey) == 0 {
		return router
	}
	protect := csrf.Protect(opts.CSRFKey,
		csrf.Secure(opts.SecureCookies),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(h.CSRFFailure)),
	)
	return protect(router)
}
