package via

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/go-via/storefront/via/h"
)

func renderToString(n h.H) string {
	var buf bytes.Buffer
	_ = n.Render(&buf)
	return buf.String()
}

func actionRequest(actionID string, sigs map[string]any) *http.Request {
	b, _ := json.Marshal(sigs)
	req := httptest.NewRequest("GET", "/_action/"+actionID, nil)
	req.URL.RawQuery = "datastar=" + url.QueryEscape(string(b))
	return req
}

// onlySession returns the single registered visit.
func (v *V) onlySession() *session {
	v.sessions.registryMu.RLock()
	defer v.sessions.registryMu.RUnlock()
	for _, s := range v.sessions.registry {
		return s
	}
	return nil
}
