package devserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/pulsefit/core/internal/middleware"
	"github.com/pulsefit/core/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const singleObjectAccept = "application/vnd.pgrst.object+json"

// restHandler serves the per-table REST interface over the dev store.
// Every request runs scoped to the authenticated user.
type restHandler struct {
	store *tableStore
}

func newRestHandler(store *tableStore) *restHandler {
	return &restHandler{store: store}
}

func parseFilters(query url.Values) (filters []filter, orderBy string, ascending bool) {
	for key, values := range query {
		if key == "order" {
			continue
		}
		for _, value := range values {
			for _, op := range []string{"eq", "gte", "lte", "lt", "is"} {
				if strings.HasPrefix(value, op+".") {
					filters = append(filters, filter{
						column: key,
						op:     op,
						value:  strings.TrimPrefix(value, op+"."),
					})
					break
				}
			}
		}
	}

	if order := query.Get("order"); order != "" {
		orderBy = order
		ascending = true
		if column, direction, found := strings.Cut(order, "."); found {
			orderBy = column
			ascending = direction != "desc"
		}
	}
	return filters, orderBy, ascending
}

func (h *restHandler) scopeFilter(r *http.Request) (filter, bool) {
	userID, ok := middleware.UserIDFromRequest(r)
	if !ok {
		return filter{}, false
	}
	return filter{column: "user_id", op: "scope", value: userID.String()}, true
}

func (h *restHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]
	scope, ok := h.scopeFilter(r)
	if !ok {
		http.Error(w, "no authenticated user", http.StatusUnauthorized)
		return
	}

	filters, orderBy, ascending := parseFilters(r.URL.Query())
	rows := h.store.selectRows(table, append(filters, scope), orderBy, ascending)
	h.writeRows(w, r, rows)
}

func (h *restHandler) handleInsert(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]
	scope, ok := h.scopeFilter(r)
	if !ok {
		http.Error(w, "no authenticated user", http.StatusUnauthorized)
		return
	}

	var payload row
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// a row claiming another user is rejected outright
	if rowUserID, set := payload["user_id"]; set && stringValue(rowUserID) != scope.value {
		http.Error(w, "row user mismatch", http.StatusForbidden)
		return
	}

	inserted := h.store.insert(table, payload)
	log.Tracef("devserver: inserted row into %q", table)

	if !strings.Contains(r.Header.Get("Prefer"), "return=representation") {
		w.WriteHeader(http.StatusCreated)
		return
	}
	h.writeRows(w, r, []row{inserted})
}

func (h *restHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]
	scope, ok := h.scopeFilter(r)
	if !ok {
		http.Error(w, "no authenticated user", http.StatusUnauthorized)
		return
	}

	var patch row
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	filters, _, _ := parseFilters(r.URL.Query())
	updated := h.store.update(table, append(filters, scope), patch)
	h.writeRows(w, r, updated)
}

func (h *restHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table"]
	scope, ok := h.scopeFilter(r)
	if !ok {
		http.Error(w, "no authenticated user", http.StatusUnauthorized)
		return
	}

	filters, _, _ := parseFilters(r.URL.Query())
	deleted := h.store.deleteRows(table, append(filters, scope))
	log.Tracef("devserver: deleted %d rows from %q", deleted, table)
	w.WriteHeader(http.StatusNoContent)
}

// writeRows renders either the row array or, when the client asked for a
// single object, exactly one row (406 otherwise, like the real backend).
func (h *restHandler) writeRows(w http.ResponseWriter, r *http.Request, rows []row) {
	var payload any = rows
	if rows == nil {
		payload = []row{}
	}

	if strings.Contains(r.Header.Get("Accept"), singleObjectAccept) {
		if len(rows) != 1 {
			http.Error(w, "expected a single row", http.StatusNotAcceptable)
			return
		}
		payload = rows[0]
	}

	respBytes, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}
