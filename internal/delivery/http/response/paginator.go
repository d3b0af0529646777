package response

import (
	"net/http"
	"net/url"
	"strconv"
)

// linkWindow is how many page links are shown on each side of the current page.
const linkWindow = 3

// Paginator is the length-aware page envelope the frontend expects.
type Paginator struct {
	CurrentPage  int         `json:"current_page"`
	Data         interface{} `json:"data"`
	FirstPageURL string      `json:"first_page_url"`
	From         *int        `json:"from"`
	LastPage     int         `json:"last_page"`
	LastPageURL  string      `json:"last_page_url"`
	Links        []PageLink  `json:"links"`
	NextPageURL  *string     `json:"next_page_url"`
	Path         string      `json:"path"`
	PerPage      int         `json:"per_page"`
	PrevPageURL  *string     `json:"prev_page_url"`
	To           *int        `json:"to"`
	Total        int64       `json:"total"`
}

type PageLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// NewPaginator builds the envelope for one page of count items. Page URLs keep
// the request's other query parameters.
func NewPaginator(r *http.Request, data interface{}, count int, total int64, page, perPage int) Paginator {
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = int((total + int64(perPage) - 1) / int64(perPage))
	}

	path := basePath(r)
	query := r.URL.Query()
	pageURL := func(n int) string {
		query.Set("page", strconv.Itoa(n))
		return path + "?" + query.Encode()
	}

	p := Paginator{
		CurrentPage:  page,
		Data:         data,
		FirstPageURL: pageURL(1),
		LastPage:     lastPage,
		LastPageURL:  pageURL(lastPage),
		Path:         path,
		PerPage:      perPage,
		Total:        total,
	}

	if count > 0 {
		from := (page-1)*perPage + 1
		to := from + count - 1
		p.From, p.To = &from, &to
	}
	if page > 1 {
		prev := pageURL(page - 1)
		p.PrevPageURL = &prev
	}
	if page < lastPage {
		next := pageURL(page + 1)
		p.NextPageURL = &next
	}

	p.Links = append(p.Links, PageLink{URL: p.PrevPageURL, Label: "&laquo; Anterior"})
	for _, n := range pageNumbers(page, lastPage) {
		if n == 0 {
			p.Links = append(p.Links, PageLink{Label: "..."})
			continue
		}
		u := pageURL(n)
		p.Links = append(p.Links, PageLink{URL: &u, Label: strconv.Itoa(n), Active: n == page})
	}
	p.Links = append(p.Links, PageLink{URL: p.NextPageURL, Label: "Próximo &raquo;"})
	return p
}

// pageNumbers lists the page links to render; 0 marks a gap.
func pageNumbers(current, last int) []int {
	if last <= 2*linkWindow+6 {
		pages := make([]int, 0, last)
		for i := 1; i <= last; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	var pages []int
	switch {
	case current <= 2*linkWindow:
		for i := 1; i <= 2*linkWindow+2; i++ {
			pages = append(pages, i)
		}
		pages = append(pages, 0, last-1, last)
	case current > last-2*linkWindow:
		pages = append(pages, 1, 2, 0)
		for i := last - (2*linkWindow + 1); i <= last; i++ {
			pages = append(pages, i)
		}
	default:
		pages = append(pages, 1, 2, 0)
		for i := current - linkWindow; i <= current+linkWindow; i++ {
			pages = append(pages, i)
		}
		pages = append(pages, 0, last-1, last)
	}
	return pages
}

func basePath(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path}
	return u.String()
}
