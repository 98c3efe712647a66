package account

// Tab names one panel of the account page.
type Tab string

const (
	TabProfile   Tab = "profile"
	TabFavorites Tab = "favorites"
	TabAddress   Tab = "address"
	TabSettings  Tab = "settings"
)

// Tabs in navigation order.
var Tabs = []Tab{TabProfile, TabFavorites, TabAddress, TabSettings}

var tabLabels = map[Tab]string{
	TabProfile:   "個人情報",
	TabFavorites: "お気に入り",
	TabAddress:   "住所",
	TabSettings:  "設定",
}

// ParseTab accepts one of the four tab names.
func ParseTab(s string) (Tab, bool) {
	t := Tab(s)
	_, ok := tabLabels[t]
	return t, ok
}

// Label is the navigation caption of the tab.
func (t Tab) Label() string {
	return tabLabels[t]
}

// ViewState is the per-visit display state. It is never persisted.
type ViewState struct {
	Active          Tab
	PasswordVisible bool
}

// NewViewState opens on the profile tab with the password masked.
func NewViewState() ViewState {
	return ViewState{Active: TabProfile}
}

// RestoreViewState rebuilds the state from raw browser values. Unknown tab
// names fall back to the profile tab.
func RestoreViewState(tab string, passwordVisible bool) ViewState {
	vs := NewViewState()
	vs.Select(Tab(tab))
	vs.PasswordVisible = passwordVisible
	return vs
}

// Select makes t the active tab. Unknown tabs are ignored.
func (vs *ViewState) Select(t Tab) {
	if _, ok := tabLabels[t]; ok {
		vs.Active = t
	}
}

// Visible reports whether the panel for t is shown.
func (vs ViewState) Visible(t Tab) bool {
	return vs.Active == t
}

// TogglePassword flips the password field between masked and plain text.
func (vs *ViewState) TogglePassword() {
	vs.PasswordVisible = !vs.PasswordVisible
}

// PasswordInputType is the type attribute of the password field.
func (vs ViewState) PasswordInputType() string {
	if vs.PasswordVisible {
		return "text"
	}
	return "password"
}
