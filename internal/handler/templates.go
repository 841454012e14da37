package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/joestump/commas/internal/build"
	"github.com/joestump/commas/internal/metrics"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

const (
	layoutFile = "base.html"
	pagesDir   = "pages"
)

// BasePage carries layout-level data available to every template.
type BasePage struct {
	Path    string
	Version string
}

func newBasePage(r *http.Request) BasePage {
	return BasePage{Path: r.URL.Path, Version: build.Version}
}

// PageOptions controls how a PageSet loads and emits pages.
type PageOptions struct {
	// Reload re-reads templates from the FS on every render (debug mode).
	Reload bool
	// Minify compresses rendered HTML, including inline CSS and JS.
	Minify bool
}

// PageSet maps a page name (e.g. "index.html") to a compiled template set
// containing base.html plus that one page file. Each page gets its own set
// so {{define "content"}} blocks don't collide.
type PageSet struct {
	fsys  fs.FS
	opts  PageOptions
	pages map[string]*template.Template
	min   *minify.M
}

// NewPageSet parses every page under pages/ in fsys. fsys must be rooted at
// the templates directory, i.e. contain base.html and pages/.
func NewPageSet(fsys fs.FS, opts PageOptions) (*PageSet, error) {
	pages, err := parsePages(fsys)
	if err != nil {
		return nil, err
	}
	s := &PageSet{fsys: fsys, opts: opts, pages: pages}
	if opts.Minify {
		s.min = newMinifier()
	}
	return s, nil
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return m
}

func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	err := fs.WalkDir(fsys, pagesDir, func(p string, d fs.DirEntry, e error) error {
		if e != nil || d.IsDir() || !strings.HasSuffix(p, ".html") {
			return e
		}
		t, err := template.New("").ParseFS(fsys, layoutFile, p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		// Key is the path relative to pages/, e.g. "index.html".
		rel, _ := strings.CutPrefix(p, pagesDir+"/")
		pages[rel] = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build page set: %w", err)
	}
	return pages, nil
}

// Names returns the known page names in sorted order.
func (s *PageSet) Names() []string {
	names := make([]string, 0, len(s.pages))
	for name := range s.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *PageSet) lookup(name string) (*template.Template, error) {
	if !s.opts.Reload {
		t, ok := s.pages[name]
		if !ok {
			return nil, fmt.Errorf("template not found: %s", name)
		}
		return t, nil
	}
	t, err := template.New("").ParseFS(s.fsys, layoutFile, pagesDir+"/"+name)
	if err != nil {
		if _, statErr := fs.Stat(s.fsys, pagesDir+"/"+name); statErr != nil {
			return nil, fmt.Errorf("template not found: %s", name)
		}
		return nil, fmt.Errorf("template error: %w", err)
	}
	return t, nil
}

// Render executes a full page (base layout + named page) and writes it with
// status 200. The page is rendered into a buffer first so a failing template
// yields a clean 500 instead of a truncated body.
func (s *PageSet) Render(w http.ResponseWriter, name string, data any) {
	start := time.Now()
	defer func() {
		metrics.PageRenderDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	t, err := s.lookup(name)
	if err != nil {
		metrics.PageRendersTotal.WithLabelValues(name, "error").Inc()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		metrics.PageRendersTotal.WithLabelValues(name, "error").Inc()
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	body := buf.Bytes()
	if s.min != nil {
		var out bytes.Buffer
		if err := s.min.Minify("text/html", &out, bytes.NewReader(body)); err != nil {
			log.Printf("minify %s: %v", name, err)
		} else {
			body = out.Bytes()
		}
	}

	metrics.PageRendersTotal.WithLabelValues(name, "ok").Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
