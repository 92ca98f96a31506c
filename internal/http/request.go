package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ActionRequest carries every parameter an action may read. It is bound
// from the query string, a form body or a JSON body. The Portuguese names
// of the legacy web form (versao, livro, capitulo, anotacoes) are
// folded into their English counterparts by normalize.
type ActionRequest struct {
	Action   string `form:"action" json:"action"`
	Version  string `form:"version" json:"version"`
	Book     string `form:"book" json:"book"`
	Chapter  *int   `form:"chapter" json:"chapter"`
	Verse    *int   `form:"verse" json:"verse"`
	Notes    string `form:"notes" json:"notes"`
	Word     string `form:"word" json:"word"`
	Limit    *int   `form:"limit" json:"limit"`
	Favorite *bool  `form:"favorite" json:"favorite"`

	Versao    string `form:"versao" json:"versao"`
	Livro     string `form:"livro" json:"livro"`
	Capitulo  *int   `form:"capitulo" json:"capitulo"`
	Anotacoes string `form:"anotacoes" json:"anotacoes"`
}

// bindActionRequest reads the query string and, for requests with a body,
// the form or JSON payload. Body values win over query values.
func bindActionRequest(c *gin.Context) (ActionRequest, error) {
	var req ActionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}

	if c.Request.Method != http.MethodGet && c.Request.ContentLength != 0 {
		var err error
		if c.ContentType() == binding.MIMEJSON {
			err = c.ShouldBindJSON(&req)
		} else {
			err = c.ShouldBindWith(&req, binding.Form)
		}
		if err != nil {
			return req, err
		}
	}

	req.normalize()
	return req, nil
}

func (r *ActionRequest) normalize() {
	if r.Version == "" {
		r.Version = r.Versao
	}
	if r.Book == "" {
		r.Book = r.Livro
	}
	if r.Chapter == nil {
		r.Chapter = r.Capitulo
	}
	if r.Notes == "" {
		r.Notes = r.Anotacoes
	}
}

// chapterOr returns the requested chapter, or fallback when none was given.
func (r ActionRequest) chapterOr(fallback int) int {
	if r.Chapter == nil || *r.Chapter <= 0 {
		return fallback
	}
	return *r.Chapter
}

// hasReadingIdentity reports whether book and chapter were both supplied.
func (r ActionRequest) hasReadingIdentity() bool {
	return r.Book != "" && r.Chapter != nil && *r.Chapter > 0
}
