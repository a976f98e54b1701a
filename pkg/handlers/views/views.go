package views

import (
	"net/http"

	"github.com/chris/apexfx-session/pkg/access"
	"github.com/chris/apexfx-session/pkg/api"
	"github.com/chris/apexfx-session/pkg/handlers/respond"
	"github.com/chris/apexfx-session/pkg/mapping"
	"github.com/chris/apexfx-session/pkg/models"
)

// ModeSource reports the current session mode.
type ModeSource interface {
	Mode() models.Mode
}

// ViewsHandler answers which view a client should show for a path.
type ViewsHandler struct {
	Gate  *access.Gate
	Modes ModeSource
}

// NewViewsHandler creates a new ViewsHandler.
func NewViewsHandler(gate *access.Gate, modes ModeSource) *ViewsHandler {
	return &ViewsHandler{Gate: gate, Modes: modes}
}

// ResolveAccess resolves params.Path against the current session state.
func (h *ViewsHandler) ResolveAccess(w http.ResponseWriter, r *http.Request, params api.ResolveAccessParams) {
	state := access.StateFor(h.Modes.Mode())
	decision := h.Gate.Resolve(state, params.Path)
	respond.JSON(w, http.StatusOK, mapping.ToApiAccessDecision(decision))
}
