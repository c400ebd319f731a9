package http

import (
	"net/http"
	"strconv"

	"github.com/wishlane/accounts/internal/account/service"
	"github.com/wishlane/accounts/internal/account/store"
	"github.com/wishlane/accounts/pkg/httpx"
)

func (rt *Router) handleGetUser(w http.ResponseWriter, r *http.Request) {
	requesterID := httpx.UserIDFromContext(r.Context())

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = requesterID
	}

	dto, err := rt.Accounts.GetUser(r.Context(), rt.translator(r), userID, requesterID)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": dto})
}

func (rt *Router) handleGetUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := rt.Accounts.GetUsers(r.Context(), service.UsersQuery{
		RequesterID: httpx.UserIDFromContext(r.Context()),
		Page:        queryInt(q.Get("page")),
		Limit:       queryInt(q.Get("limit")),
		Filter:      parseFilter(q.Get("filter")),
		Search:      q.Get("search"),
	})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, page)
}

func (rt *Router) handleGetAllUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	users, err := rt.Accounts.GetAllUsers(r.Context(), service.AllUsersQuery{
		Page:   queryInt(q.Get("page")),
		Limit:  queryInt(q.Get("limit")),
		Search: q.Get("search"),
	})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

type deleteUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (rt *Router) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	var req deleteUserRequest
	if err := decodeJSON(r, &req); err != nil {
		rt.badRequest(w, r)
		return
	}

	deletedID, err := rt.Accounts.DeleteMyUser(r.Context(), rt.translator(r), service.DeleteMyUserRequest{
		UserID:   httpx.UserIDFromContext(r.Context()),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	rt.clearRefreshCookie(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"deletedId": deletedID})
}

func queryInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseFilter(s string) store.UserFilter {
	switch store.UserFilter(s) {
	case store.FilterFriends, store.FilterFollowTo, store.FilterFollowFrom:
		return store.UserFilter(s)
	}
	return store.FilterAll
}
