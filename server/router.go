package server

import (
	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/rolodexhq/rolodex/server/auth"
	"github.com/rolodexhq/rolodex/server/auth/key"
	"github.com/rolodexhq/rolodex/server/models"
	"go.uber.org/zap"
)

type RequestContextKey string

type DecodedJWT struct {
	Claims   *auth.RolodexTokenClaims
	ErrorMsg string
}

var validate = validator.New()

// App holds every dependency the handlers need. All of them are injected, so
// route tests can run against a test db & a storage stub.
type App struct {
	store    *models.Store
	uploader *Uploader
	keyPair  *key.KeyPair
	logg     *zap.SugaredLogger
}

func NewApp(store *models.Store, uploader *Uploader, keyPair *key.KeyPair, logg *zap.SugaredLogger) *App {
	return &App{
		store:    store,
		uploader: uploader,
		keyPair:  keyPair,
		logg:     logg,
	}
}

// NewRouter wires every route. Signup, login, jwks & health sit outside the
// bearer gate; everything else under /api requires a valid token.
func NewRouter(app *App) *mux.Router {
	router := mux.NewRouter()
	router.Use(app.loggingMiddleware, app.initialContextMiddleware)

	router.HandleFunc("/health", app.healthCheckHandler).Methods("GET")
	router.HandleFunc("/.well-known/jwks.json", app.jwksHandler).Methods("GET")
	router.HandleFunc("/api/signup", app.signupHandler).Methods("POST")
	router.HandleFunc("/api/login", app.loginHandler).Methods("GET")

	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(app.protectedRouteMiddleware)
	protected.HandleFunc("/contacts", app.listContactsHandler).Methods("GET")
	protected.HandleFunc("/contact", app.createContactHandler).Methods("POST")
	protected.HandleFunc("/contact/{id}", app.findContactHandler).Methods("GET")
	protected.HandleFunc("/contact/{id}", app.updateContactHandler).Methods("PUT")
	protected.HandleFunc("/contact/{id}", app.deleteContactHandler).Methods("DELETE")
	protected.HandleFunc("/contact/{contactID}/pic", app.uploadPicHandler).Methods("POST")

	return router
}
