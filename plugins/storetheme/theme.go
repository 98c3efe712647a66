// Package storetheme serves the storefront stylesheet and links it into every
// page of a via app.
package storetheme

import (
	"bytes"
	"compress/gzip"
	_ "embed"
	"fmt"
	"hash/crc32"
	"net/http"
	"strings"

	"github.com/go-via/storefront/via"
	"github.com/go-via/storefront/via/h"
)

// StylesheetPath is where the stylesheet is served.
const StylesheetPath = "/_plugins/storetheme/account.css"

//go:embed account.css
var accountCSS []byte

type Option func(*plugin)

// WithCSS replaces the embedded stylesheet.
func WithCSS(css []byte) Option {
	return func(p *plugin) { p.css = css }
}

// WithMaxAge sets the Cache-Control max-age in seconds. Default is one day.
func WithMaxAge(seconds int) Option {
	return func(p *plugin) { p.maxAge = seconds }
}

type plugin struct {
	css     []byte
	cssGzip []byte
	etag    string
	maxAge  int
}

// New creates the theme plugin.
func New(opts ...Option) via.Plugin {
	p := &plugin{css: accountCSS, maxAge: 86400}
	for _, opt := range opts {
		opt(p)
	}
	p.etag = `"` + crc32Hex(p.css) + `"`
	p.cssGzip = gzipBytes(p.css)
	return p
}

func crc32Hex(b []byte) string {
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE(b))
}

func gzipBytes(b []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Write(b)
	w.Close()
	return buf.Bytes()
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

func (p *plugin) serveStylesheet(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("If-None-Match") == p.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", p.maxAge))
	w.Header().Set("ETag", p.etag)
	w.Header().Set("Vary", "Accept-Encoding")
	if acceptsGzip(r) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(p.cssGzip)
		return
	}
	w.Write(p.css)
}

func (p *plugin) Register(v *via.V) {
	v.AppendToHead(
		h.Meta(h.Name("viewport"), h.Attr("content", "width=device-width, initial-scale=1")),
		h.Link(h.Rel("stylesheet"), h.Href(StylesheetPath)),
	)
	v.HandleFunc("GET "+StylesheetPath, p.serveStylesheet)
}
