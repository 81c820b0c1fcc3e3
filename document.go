package ink

// DocumentVersion is the current serialization format version.
const DocumentVersion = 1

// Document is an ordered collection of pages plus the index of the
// page currently being edited. It is the unit of serialization.
type Document struct {
	Version     int
	Pages       []*Page
	CurrentPage int
}

// NewDocument creates a document with a single empty page.
func NewDocument() *Document {
	return &Document{
		Version: DocumentVersion,
		Pages:   []*Page{NewPage("Page 1")},
	}
}

// Page returns the current page.
func (d *Document) Page() *Page {
	return d.Pages[d.CurrentPage]
}

// AddPage appends a new page and makes it current.
func (d *Document) AddPage(name string) *Page {
	p := NewPage(name)
	d.Pages = append(d.Pages, p)
	d.CurrentPage = len(d.Pages) - 1
	return p
}

// RemovePage deletes the page at idx. The last remaining page is never
// removed; out-of-range indices are ignored. CurrentPage is clamped so
// it always refers to a valid page.
func (d *Document) RemovePage(idx int) {
	if idx < 0 || idx >= len(d.Pages) || len(d.Pages) == 1 {
		return
	}
	d.Pages = append(d.Pages[:idx], d.Pages[idx+1:]...)
	if d.CurrentPage >= len(d.Pages) {
		d.CurrentPage = len(d.Pages) - 1
	}
}

// SetCurrentPage switches the current page, clamping idx into range.
func (d *Document) SetCurrentPage(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(d.Pages) {
		idx = len(d.Pages) - 1
	}
	d.CurrentPage = idx
}
