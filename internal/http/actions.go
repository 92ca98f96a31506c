package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// actionHandler serves one named action from an already bound request.
type actionHandler func(c *gin.Context, req ActionRequest)

type action struct {
	handle actionHandler
	writes bool // requires POST and is refused in read-only mode
}

// ActionController serves the single action endpoint, /api?action=<name>,
// dispatching to the same handlers as the REST routes.
type ActionController struct {
	actions  map[string]action
	readOnly bool
}

func NewActionController(content *ContentController, progress *ReadingsController, readOnly bool) *ActionController {
	return &ActionController{
		readOnly: readOnly,
		actions: map[string]action{
			"get_books":         {handle: content.getBooks},
			"get_book":          {handle: content.getBook},
			"get_chapter":       {handle: content.getChapter},
			"get_verse":         {handle: content.getVerse},
			"random_verse":      {handle: content.randomVerse},
			"search":            {handle: content.search},
			"versions":          {handle: content.listVersions},
			"registrar_leitura": {handle: progress.record, writes: true},
			"favorito":          {handle: progress.setFavorite, writes: true},
			"stats":             {handle: progress.stats},
			"historico":         {handle: progress.history},
			"favoritos":         {handle: progress.favorites},
		},
	}
}

// Dispatch runs the action named by the "action" parameter.
// GET|POST /api
func (ac *ActionController) Dispatch(c *gin.Context) {
	req, err := bindActionRequest(c)
	if err != nil {
		respondBadRequest(c, "invalid request parameters")
		return
	}

	if req.Action == "" {
		respondBadRequest(c, "action is required")
		return
	}

	act, ok := ac.actions[req.Action]
	if !ok {
		respondBadRequest(c, "unknown action: "+req.Action)
		return
	}

	if act.writes {
		if c.Request.Method != http.MethodPost {
			respondError(c, http.StatusMethodNotAllowed, req.Action+" requires POST")
			return
		}
		if ac.readOnly {
			respondError(c, http.StatusForbidden, readOnlyMessage)
			return
		}
	}

	act.handle(c, req)
}
