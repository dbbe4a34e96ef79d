package domain

// PageState is what the canvas needs to render the open page.
type PageState struct {
	NoteID    string `json:"noteId"`
	PageIndex int    `json:"pageIndex"`
	Current   int    `json:"current"`
	Total     int    `json:"total"`
	Counter   string `json:"counter"`
	Tool      Tool   `json:"tool"`
	Drawing   []byte `json:"drawing"`
}
