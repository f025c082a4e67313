package router

import (
	"net/http"
	"strconv"
	"strings"

	"garage-backend/internal/auth"
	"garage-backend/internal/handler"
	"garage-backend/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	orderHandler *handler.OrderHandler,
	billHandler *handler.BillHandler,
	bookingHandler *handler.BookingHandler,
	driverHandler *handler.DriverHandler,
	storeHandler *handler.StoreHandler,
	authz auth.Authorizer,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// guard wraps mutating handlers with the employee permission check.
	guard := func(permission string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequirePermission(authz, permission, logger)(h).ServeHTTP
	}

	// Order routes
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/orders" || r.URL.Path == "/api/orders/" {
			if r.Method == http.MethodPost {
				guard(auth.PermOrdersWrite, orderHandler.Save)(w, r)
				return
			}
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Line-item deletion: POST /api/orders/{id}/lines/delete
		if rest, ok := strings.CutPrefix(r.URL.Path, "/api/orders/"); ok {
			if rawID, found := strings.CutSuffix(rest, "/lines/delete"); found {
				if r.Method != http.MethodPost {
					http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
					return
				}
				id, err := strconv.ParseInt(rawID, 10, 64)
				if err != nil {
					http.Error(w, "not found", http.StatusNotFound)
					return
				}
				guard(auth.PermOrdersWrite, func(w http.ResponseWriter, r *http.Request) {
					orderHandler.DeleteLine(w, r, id)
				})(w, r)
				return
			}
		}

		switch r.Method {
		case http.MethodGet:
			orderHandler.GetByID(w, r)
		case http.MethodDelete:
			guard(auth.PermOrdersWrite, orderHandler.Delete)(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Bill routes
	billRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/bills" || r.URL.Path == "/api/bills/" {
			if r.Method == http.MethodPost {
				guard(auth.PermBillsWrite, billHandler.Create)(w, r)
				return
			}
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		switch r.Method {
		case http.MethodGet:
			billHandler.GetByID(w, r)
		case http.MethodDelete:
			guard(auth.PermBillsWrite, billHandler.Delete)(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/bills", billRouteHandler)
	mux.HandleFunc("/api/bills/", billRouteHandler)

	// Booking routes
	bookingRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/bookings" || r.URL.Path == "/api/bookings/" {
			switch r.Method {
			case http.MethodGet:
				bookingHandler.List(w, r)
			case http.MethodPost:
				guard(auth.PermBookingsWrite, bookingHandler.Create)(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		switch r.Method {
		case http.MethodGet:
			bookingHandler.GetByID(w, r)
		case http.MethodPatch:
			guard(auth.PermBookingsWrite, bookingHandler.UpdateStatus)(w, r)
		case http.MethodDelete:
			guard(auth.PermBookingsWrite, bookingHandler.Delete)(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/bookings", bookingRouteHandler)
	mux.HandleFunc("/api/bookings/", bookingRouteHandler)

	// Driver routes
	driverRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/drivers" || r.URL.Path == "/api/drivers/" {
			switch r.Method {
			case http.MethodGet:
				driverHandler.List(w, r)
			case http.MethodPost:
				guard(auth.PermDriversWrite, driverHandler.Create)(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		switch r.Method {
		case http.MethodGet:
			driverHandler.GetByID(w, r)
		case http.MethodPut:
			guard(auth.PermDriversWrite, driverHandler.Update)(w, r)
		case http.MethodDelete:
			guard(auth.PermDriversWrite, driverHandler.Delete)(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/drivers", driverRouteHandler)
	mux.HandleFunc("/api/drivers/", driverRouteHandler)

	// Store routes
	storeRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/stores" || r.URL.Path == "/api/stores/" {
			switch r.Method {
			case http.MethodGet:
				storeHandler.List(w, r)
			case http.MethodPost:
				guard(auth.PermStoresWrite, storeHandler.Create)(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		switch r.Method {
		case http.MethodGet:
			storeHandler.GetByID(w, r)
		case http.MethodPut:
			guard(auth.PermStoresWrite, storeHandler.Update)(w, r)
		case http.MethodDelete:
			guard(auth.PermStoresWrite, storeHandler.Delete)(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/stores", storeRouteHandler)
	mux.HandleFunc("/api/stores/", storeRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> RequestID -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.RequestID(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
