package account

import (
	"github.com/go-via/storefront/internal/catalog"
	"github.com/go-via/storefront/internal/session"
	"github.com/go-via/storefront/via"
	"github.com/go-via/storefront/via/h"
)

func loadingView(resolve *via.ActionHandle) h.H {
	return h.Div(h.Class("placeholder"), h.Role("status"), resolve.OnInit(),
		h.P(h.Text("読み込み中…")),
	)
}

func redirectingView() h.H {
	return h.Div(h.Class("placeholder"), h.Role("status"),
		h.P(h.Text("ログインページへ移動しています…")),
	)
}

func sideNav(tab *via.SignalHandle[string], vs ViewState) h.H {
	buttons := make([]h.H, 0, len(Tabs)+2)
	buttons = append(buttons, h.Class("sidenav"), h.AriaLabel("アカウントメニュー"))
	for _, t := range Tabs {
		buttons = append(buttons, h.Button(
			h.Class(activeClass("nav-btn", vs.Visible(t))),
			h.Type("button"),
			h.AriaControls("p-"+string(t)),
			h.DataClass("active", tab.Equals(string(t))),
			h.DataOnClick(tab.Assign(string(t))),
			h.Text(t.Label()),
		))
	}
	return h.Nav(buttons...)
}

func panel(tab *via.SignalHandle[string], vs ViewState, t Tab, children ...h.H) h.H {
	return h.Section(append([]h.H{
		h.ID("p-" + string(t)),
		h.Class(activeClass("panel", vs.Visible(t))),
		h.DataClass("active", tab.Equals(string(t))),
	}, children...)...)
}

func activeClass(base string, active bool) string {
	if active {
		return base + " active"
	}
	return base
}

func field(id, label string, input ...h.H) h.H {
	return h.Div(
		h.Label(h.For(id), h.Text(label)),
		h.Input(append([]h.H{h.ID(id), h.Class("input")}, input...)...),
	)
}

func saveButton() h.H {
	return h.Div(h.Class("actions"),
		h.Button(h.Class("btn"), h.Type("button"), h.Text("保存")),
	)
}

func profilePanel(tab *via.SignalHandle[string], showPassword *via.SignalHandle[bool], vs ViewState, st session.Status) h.H {
	name, email := Display(st)
	return panel(tab, vs, TabProfile,
		h.Div(h.Class("section"),
			field("name", "名前", h.Placeholder(PlaceholderName), h.Value(name)),
			field("email", "メールアドレス", h.Placeholder(PlaceholderEmail), h.Value(email)),
			h.Div(h.Class("pw-wrap"),
				h.Label(h.For("pw"), h.Text("パスワード")),
				h.Input(
					h.ID("pw"),
					h.Class("input"),
					h.Type(vs.PasswordInputType()),
					h.DataAttr("type", showPassword.Ref()+" ? 'text' : 'password'"),
					h.Value("*****"),
					h.AriaDescribedBy("pwHelp"),
				),
				h.Button(
					h.Class("pw-toggle"),
					h.Type("button"),
					h.AriaLabel("パスワード表示切替"),
					h.DataOnClick(showPassword.Toggle()),
					h.Text("👁"),
				),
			),
			saveButton(),
		),
	)
}

func favoritesList(items catalog.Items, remove *via.ActionHandle, target *via.SignalHandle[string], notice string) h.H {
	cards := []h.H{h.Class("fav-list")}
	for f := range items.All() {
		cards = append(cards, h.Article(h.Class("card"),
			h.Div(h.Class("thumb"), h.Img(h.Src(f.ThumbnailURL), h.Alt(""), h.Width("72"), h.Height("72"), h.AriaHidden())),
			h.Div(h.Class("meta"),
				h.Div(h.Class("title"), h.Text(f.Title)),
				h.Div(h.Class("chip-row"),
					h.Span(h.Text(f.QuantityLabel())),
					h.Span(h.Class("price"), h.Text(f.FormatPrice())),
					h.A(h.Class("sub"), h.Href("#"),
						remove.OnClick(via.ActionOptionWithPrevent(), via.ActionOptionWithSignal(target, f.ID)),
						h.Text("お気に入りから削除"),
					),
				),
			),
		))
	}
	return h.Group(
		h.H2(h.Text("お気に入り")),
		h.If(notice != "", h.P(h.Class("sub"), h.Text(notice))),
		h.If(notice == "" && items.Len() == 0, h.P(h.Class("sub"), h.Text("お気に入りはまだありません"))),
		h.Div(cards...),
	)
}

func options(selected string, values ...string) []h.H {
	out := make([]h.H, 0, len(values))
	for _, v := range values {
		out = append(out, h.Option(h.If(v == selected, h.Selected()), h.Text(v)))
	}
	return out
}

func addressPanel(tab *via.SignalHandle[string], vs ViewState) h.H {
	return panel(tab, vs, TabAddress,
		h.Div(h.Class("section"), h.Style("max-width: 640px"),
			h.Div(
				h.Label(h.For("country"), h.Text("国家")),
				h.Select(append([]h.H{h.ID("country"), h.Class("select")}, options("日本", "日本", "中国", "United States")...)...),
			),
			field("zip", "郵便番号", h.Placeholder("1660002"), h.Value("1660002")),
			h.Div(h.Class("row-2"),
				field("city", "都市・区", h.Placeholder("東京・杉並区"), h.Value("東京・杉並区")),
				field("block", "番地", h.Placeholder("4-32-9"), h.Value("4-32-9")),
			),
			field("addr", "住所", h.Placeholder("ジュネス５ 303室"), h.Value("ジュネス５ 303室")),
			saveButton(),
		),
	)
}

func settingsPanel(tab *via.SignalHandle[string], vs ViewState, logout *via.ActionHandle) h.H {
	return panel(tab, vs, TabSettings,
		h.Div(h.Class("section"), h.Style("max-width: 520px"),
			h.Div(
				h.Label(h.For("lang"), h.Text("言語")),
				h.Select(append([]h.H{h.ID("lang"), h.Class("select")}, options("日本語", "日本語", "English", "中文")...)...),
			),
			h.Div(h.Style("margin-top: 24px"),
				h.H2(h.Text("サインアウト")),
				h.Div(h.Class("actions"),
					h.Button(h.Class("btn"), h.Type("button"), logout.OnClick(), h.Text("サインアウト")),
				),
			),
		),
	)
}
