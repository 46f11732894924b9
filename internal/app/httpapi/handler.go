package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	app "github.com/R3E-Network/algorithm_service/internal/app"
	"github.com/R3E-Network/algorithm_service/internal/app/metrics"
)

// Limits bounds the input sizes accepted by the algorithm endpoints. Zero
// fields fall back to the defaults.
type Limits struct {
	MaxArrayLen   int
	MaxPrimeLimit int
}

const (
	defaultMaxArrayLen   = 10000
	defaultMaxPrimeLimit = 1000000
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app    *app.Application
	limits Limits
}

// NewHandler returns a router exposing the REST API plus /healthz and /metrics.
func NewHandler(application *app.Application, limits Limits) http.Handler {
	if limits.MaxArrayLen <= 0 {
		limits.MaxArrayLen = defaultMaxArrayLen
	}
	if limits.MaxPrimeLimit <= 0 {
		limits.MaxPrimeLimit = defaultMaxPrimeLimit
	}
	h := &handler{app: application, limits: limits}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	router.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	algos := router.PathPrefix("/api/algorithms").Subrouter()
	algos.HandleFunc("/binarySearch", h.binarySearch).Methods(http.MethodGet)
	algos.HandleFunc("/quickSort", h.quickSort).Methods(http.MethodGet)
	algos.HandleFunc("/bubbleSort", h.bubbleSort).Methods(http.MethodGet)
	algos.HandleFunc("/fibonacci", h.fibonacci).Methods(http.MethodGet)
	algos.HandleFunc("/primeNumbers", h.primeNumbers).Methods(http.MethodGet)
	algos.HandleFunc("/factorial", h.factorial).Methods(http.MethodGet)

	// Literal segments are registered before {id} so they take precedence.
	users := router.PathPrefix("/api/users").Subrouter()
	users.HandleFunc("", h.listUsers).Methods(http.MethodGet)
	users.HandleFunc("", h.createUser).Methods(http.MethodPost)
	users.HandleFunc("/search", h.searchUsers).Methods(http.MethodGet)
	users.HandleFunc("/email/{email}", h.getUserByEmail).Methods(http.MethodGet)
	users.HandleFunc("/{id}", h.getUser).Methods(http.MethodGet)
	users.HandleFunc("/{id}", h.updateUser).Methods(http.MethodPut)
	users.HandleFunc("/{id}", h.deleteUser).Methods(http.MethodDelete)

	return router
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
