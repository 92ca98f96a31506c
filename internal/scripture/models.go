package scripture

// Abbrev holds the book key in each language the API knows.
type Abbrev struct {
	PT string `json:"pt"`
	EN string `json:"en"`
}

// Book is a scripture book. When embedded in a chapter or verse response
// only the identifying fields and Version are populated.
type Book struct {
	Abbrev    Abbrev `json:"abbrev"`
	Name      string `json:"name"`
	Author    string `json:"author,omitempty"`
	Group     string `json:"group,omitempty"`
	Testament string `json:"testament,omitempty"`
	Chapters  int    `json:"chapters,omitempty"`
	Version   string `json:"version,omitempty"`
}

// ChapterInfo is the chapter header of a chapter response.
type ChapterInfo struct {
	Number int `json:"number"`
	Verses int `json:"verses"`
}

// Chapter is a full chapter with its verses in order.
type Chapter struct {
	Book    Book        `json:"book"`
	Chapter ChapterInfo `json:"chapter"`
	Verses  []Verse     `json:"verses"`
}

// Verse is a single verse. Book and Chapter are omitted by the API for
// verses listed inside a Chapter.
type Verse struct {
	Book    *Book  `json:"book,omitempty"`
	Chapter int    `json:"chapter,omitempty"`
	Number  int    `json:"number"`
	Text    string `json:"text"`
}

// VersionCode returns the translation the verse was served in, if known.
func (v Verse) VersionCode() string {
	if v.Book == nil {
		return ""
	}
	return v.Book.Version
}

// SearchResult is the response of a word search.
type SearchResult struct {
	Occurrence int     `json:"occurrence"`
	Version    string  `json:"version"`
	Verses     []Verse `json:"verses"`
}

// Version is an available translation and its verse count.
type Version struct {
	Version string `json:"version"`
	Verses  int    `json:"verses"`
}

type searchRequest struct {
	Version string `json:"version"`
	Search  string `json:"search"`
}

// apiMessage is the body the API sends alongside error statuses.
type apiMessage struct {
	Msg string `json:"msg"`
}
