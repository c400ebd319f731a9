package http

import (
	"net/http"

	"github.com/wishlane/accounts/pkg/httpx"
)

// handleActivate consumes an activation link clicked from an email and sends
// the browser back to the client app: the main page on success, the
// link-expired page otherwise.
func (rt *Router) handleActivate(w http.ResponseWriter, r *http.Request) {
	link := r.PathValue("link")

	res, err := rt.Accounts.Activate(r.Context(), rt.translator(r), link)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	target := rt.clientURL + "/" + string(res.Lang) + "/main"
	if !res.IsActivated {
		target = rt.clientURL + "/" + string(res.Lang) + "/activation-link-expired"
	}

	http.Redirect(w, r, target, http.StatusFound)
}

func (rt *Router) handleGetActivationLink(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	email, err := rt.Accounts.GenerateActivationLink(r.Context(), rt.translator(r), userID)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"email": email})
}
