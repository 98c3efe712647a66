package via

// TestGetSession returns a page visit for testing.
func (v *V) TestGetSession(id string) (*session, error) {
	return v.getSession(id)
}

// TestGetPatchChan returns the patch channel for testing.
func (s *session) TestGetPatchChan() <-chan patch {
	return s.patchChan
}

// TestContent returns the patch content for testing.
func (p patch) TestContent() string {
	return p.content
}

// TestIsScript reports whether the patch runs a script.
func (p patch) TestIsScript() bool {
	return p.typ == patchTypeScript
}
