package handler

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
)

const testLayout = `{{define "base"}}<html><body>{{template "content" .}}</body></html>{{end}}`

func newTestFS() fstest.MapFS {
	return fstest.MapFS{
		"base.html":        {Data: []byte(testLayout)},
		"pages/a.html":     {Data: []byte(`{{define "content"}}page a {{.Path}}{{end}}`)},
		"pages/b.html":     {Data: []byte(`{{define "content"}}page b{{end}}`)},
		"pages/sub/c.html": {Data: []byte(`{{define "content"}}page c{{end}}`)},
		"pages/notes.txt":  {Data: []byte("not a page")},
	}
}

func mustPageSet(t *testing.T, fsys fstest.MapFS, opts PageOptions) *PageSet {
	t.Helper()
	s, err := NewPageSet(fsys, opts)
	if err != nil {
		t.Fatalf("NewPageSet: %v", err)
	}
	return s
}

func renderToRecorder(s *PageSet, name string, data any) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Render(w, name, data)
	return w
}

func TestPageSet_Names(t *testing.T) {
	s := mustPageSet(t, newTestFS(), PageOptions{})

	want := []string{"a.html", "b.html", "sub/c.html"}
	if got := s.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestPageSet_Render(t *testing.T) {
	s := mustPageSet(t, newTestFS(), PageOptions{})

	w := renderToRecorder(s, "a.html", BasePage{Path: "/x"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got, want := w.Body.String(), "<html><body>page a /x</body></html>"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestPageSet_PagesDoNotShareContent(t *testing.T) {
	s := mustPageSet(t, newTestFS(), PageOptions{})

	a := renderToRecorder(s, "a.html", BasePage{}).Body.String()
	b := renderToRecorder(s, "b.html", BasePage{}).Body.String()
	if !strings.Contains(a, "page a") || strings.Contains(a, "page b") {
		t.Errorf("a.html body = %q", a)
	}
	if !strings.Contains(b, "page b") || strings.Contains(b, "page a") {
		t.Errorf("b.html body = %q", b)
	}
}

func TestPageSet_NestedPage(t *testing.T) {
	s := mustPageSet(t, newTestFS(), PageOptions{})

	w := renderToRecorder(s, "sub/c.html", BasePage{})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "page c") {
		t.Errorf("body = %q, want page c", w.Body.String())
	}
}

func TestPageSet_UnknownPage(t *testing.T) {
	for _, reload := range []bool{false, true} {
		s := mustPageSet(t, newTestFS(), PageOptions{Reload: reload})

		w := renderToRecorder(s, "missing.html", BasePage{})
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("reload=%t: status = %d, want %d", reload, w.Code, http.StatusInternalServerError)
		}
		if !strings.Contains(w.Body.String(), "template not found: missing.html") {
			t.Errorf("reload=%t: body = %q", reload, w.Body.String())
		}
	}
}

func TestPageSet_ExecErrorWritesNoPartialBody(t *testing.T) {
	fsys := newTestFS()
	fsys["pages/broken.html"] = &fstest.MapFile{Data: []byte(`{{define "content"}}{{.Missing}}{{end}}`)}
	s := mustPageSet(t, fsys, PageOptions{})

	w := renderToRecorder(s, "broken.html", BasePage{})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "template error:") {
		t.Errorf("body = %q, want template error prefix", body)
	}
	if strings.Contains(body, "<html>") {
		t.Errorf("body contains partial page output: %q", body)
	}
}

func TestNewPageSet_ParseError(t *testing.T) {
	fsys := newTestFS()
	fsys["pages/bad.html"] = &fstest.MapFile{Data: []byte(`{{define "content"}}{{.Path{{end}}`)}

	if _, err := NewPageSet(fsys, PageOptions{}); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestPageSet_ReloadPicksUpEdits(t *testing.T) {
	fsys := newTestFS()
	s := mustPageSet(t, fsys, PageOptions{Reload: true})

	fsys["pages/b.html"] = &fstest.MapFile{Data: []byte(`{{define "content"}}page b, edited{{end}}`)}

	w := renderToRecorder(s, "b.html", BasePage{})
	if !strings.Contains(w.Body.String(), "page b, edited") {
		t.Errorf("body = %q, want edited content", w.Body.String())
	}
}

func TestPageSet_NoReloadKeepsParsedPages(t *testing.T) {
	fsys := newTestFS()
	s := mustPageSet(t, fsys, PageOptions{})

	fsys["pages/b.html"] = &fstest.MapFile{Data: []byte(`{{define "content"}}page b, edited{{end}}`)}

	w := renderToRecorder(s, "b.html", BasePage{})
	if strings.Contains(w.Body.String(), "edited") {
		t.Errorf("body = %q, want original content", w.Body.String())
	}
}

func TestPageSet_Minify(t *testing.T) {
	fsys := newTestFS()
	fsys["pages/loose.html"] = &fstest.MapFile{Data: []byte(`{{define "content"}}
		<p>   hello   </p>


		<style>  body  {  color :  red ;  }  </style>
	{{end}}`)}

	plain := renderToRecorder(mustPageSet(t, fsys, PageOptions{}), "loose.html", BasePage{}).Body.String()
	w := renderToRecorder(mustPageSet(t, fsys, PageOptions{Minify: true}), "loose.html", BasePage{})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	min := w.Body.String()
	if len(min) >= len(plain) {
		t.Errorf("minified body (%d bytes) not smaller than plain (%d bytes)", len(min), len(plain))
	}
	if strings.Contains(min, "\n\n") {
		t.Errorf("minified body still has blank lines: %q", min)
	}
	if !strings.Contains(min, "hello") {
		t.Errorf("minified body lost content: %q", min)
	}
}
