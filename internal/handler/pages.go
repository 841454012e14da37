package handler

import "net/http"

// Route binds a literal request path to the page it renders.
type Route struct {
	Path     string
	Template string
}

// Routes is the fixed path-to-page table served by PagesHandler.
var Routes = []Route{
	{Path: "/", Template: "index.html"},
	{Path: "/left", Template: "scenario_left.html"},
	{Path: "/scenario_right.html", Template: "scenario_right.html"},
}

// PagesHandler serves the landing page and the two comma scenarios.
type PagesHandler struct {
	pages *PageSet
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(pages *PageSet) *PagesHandler { return &PagesHandler{pages: pages} }

// Index serves GET /.
func (h *PagesHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, "index.html", newBasePage(r))
}

// Left serves GET /left, the page behind the left comma.
func (h *PagesHandler) Left(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, "scenario_left.html", newBasePage(r))
}

// Right serves GET /scenario_right.html, the map behind the right comma.
func (h *PagesHandler) Right(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, "scenario_right.html", newBasePage(r))
}
