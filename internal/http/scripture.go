package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultChapterBook = "gn"
	defaultChapter     = 1

	msgSearchTermRequired = "search term required"
)

// ContentController serves remote scripture content.
type ContentController struct {
	client ContentClient
}

func NewContentController(client ContentClient) *ContentController {
	return &ContentController{client: client}
}

// GetBooks returns every book.
// GET /api/books
func (cc *ContentController) GetBooks(c *gin.Context) {
	cc.getBooks(c, ActionRequest{})
}

// GetBook returns one book.
// GET /api/books/:book
func (cc *ContentController) GetBook(c *gin.Context) {
	cc.getBook(c, ActionRequest{Book: c.Param("book")})
}

// GetChapter returns a chapter with its verses.
// GET /api/verses/:version/:book/:chapter
func (cc *ContentController) GetChapter(c *gin.Context) {
	chapter, ok := parseIntParam(c, "chapter")
	if !ok {
		return
	}
	cc.getChapter(c, ActionRequest{
		Version: c.Param("version"),
		Book:    c.Param("book"),
		Chapter: &chapter,
	})
}

// GetVerse returns a single verse.
// GET /api/verses/:version/:book/:chapter/:verse
func (cc *ContentController) GetVerse(c *gin.Context) {
	chapter, ok := parseIntParam(c, "chapter")
	if !ok {
		return
	}
	verse, ok := parseIntParam(c, "verse")
	if !ok {
		return
	}
	cc.getVerse(c, ActionRequest{
		Version: c.Param("version"),
		Book:    c.Param("book"),
		Chapter: &chapter,
		Verse:   &verse,
	})
}

// RandomVerse returns a random verse, optionally from one book.
// GET /api/random?version=&book=
func (cc *ContentController) RandomVerse(c *gin.Context) {
	cc.withRequest(c, cc.randomVerse)
}

// Search finds verses containing a word.
// POST /api/search
func (cc *ContentController) Search(c *gin.Context) {
	cc.withRequest(c, cc.search)
}

// ListVersions returns the available translations.
// GET /api/versions
func (cc *ContentController) ListVersions(c *gin.Context) {
	cc.listVersions(c, ActionRequest{})
}

func (cc *ContentController) withRequest(c *gin.Context, handle actionHandler) {
	req, err := bindActionRequest(c)
	if err != nil {
		respondBadRequest(c, "invalid request parameters")
		return
	}
	handle(c, req)
}

func (cc *ContentController) getBooks(c *gin.Context, _ ActionRequest) {
	books, err := cc.client.ListBooks(c.Request.Context())
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (cc *ContentController) getBook(c *gin.Context, req ActionRequest) {
	if req.Book == "" {
		respondBadRequest(c, "book is required")
		return
	}
	book, err := cc.client.GetBook(c.Request.Context(), req.Book)
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (cc *ContentController) getChapter(c *gin.Context, req ActionRequest) {
	book := req.Book
	if book == "" {
		book = defaultChapterBook
	}

	chapter, err := cc.client.GetChapter(c.Request.Context(), req.Version, book, req.chapterOr(defaultChapter))
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func (cc *ContentController) getVerse(c *gin.Context, req ActionRequest) {
	if !req.hasReadingIdentity() || req.Verse == nil || *req.Verse <= 0 {
		respondBadRequest(c, "book, chapter and verse are required")
		return
	}

	verse, err := cc.client.GetVerse(c.Request.Context(), req.Version, req.Book, *req.Chapter, *req.Verse)
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, verse)
}

func (cc *ContentController) randomVerse(c *gin.Context, req ActionRequest) {
	verse, err := cc.client.GetRandomVerse(c.Request.Context(), req.Version, req.Book)
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, verse)
}

func (cc *ContentController) search(c *gin.Context, req ActionRequest) {
	word := strings.TrimSpace(req.Word)
	if word == "" {
		respondBadRequest(c, msgSearchTermRequired)
		return
	}

	result, err := cc.client.SearchVerses(c.Request.Context(), word, req.Version)
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (cc *ContentController) listVersions(c *gin.Context, _ ActionRequest) {
	versions, err := cc.client.ListVersions(c.Request.Context())
	if err != nil {
		respondClientError(c, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}
