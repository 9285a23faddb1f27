// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed")
}

func notFound(w http.ResponseWriter) {
	writeErr(w, http.StatusNotFound, "not_found")
}

// cartIDFrom resolves the client cart slot: X-Cart-Id header first,
// cartId query as a fallback for clients that cannot set headers.
func cartIDFrom(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get("X-Cart-Id")); id != "" {
		return id
	}
	return strings.TrimSpace(r.URL.Query().Get("cartId"))
}

func parseFloatPtr(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// splitCSV parses "a,b,c" / "a, b, c" into []string (empty trimmed items are removed).
func splitCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
