// Element wrappers for the tags the storefront pages render.

package h

import (
	gh "maragu.dev/gomponents/html"
)

func A(children ...H) H {
	return gh.A(retype(children)...)
}

func Article(children ...H) H {
	return gh.Article(retype(children)...)
}

func Button(children ...H) H {
	return gh.Button(retype(children)...)
}

func Div(children ...H) H {
	return gh.Div(retype(children)...)
}

func H1(children ...H) H {
	return gh.H1(retype(children)...)
}

func H2(children ...H) H {
	return gh.H2(retype(children)...)
}

func Img(children ...H) H {
	return gh.Img(retype(children)...)
}

func Input(children ...H) H {
	return gh.Input(retype(children)...)
}

func Label(children ...H) H {
	return gh.Label(retype(children)...)
}

func Link(children ...H) H {
	return gh.Link(retype(children)...)
}

func Main(children ...H) H {
	return gh.Main(retype(children)...)
}

func Meta(children ...H) H {
	return gh.Meta(retype(children)...)
}

func Nav(children ...H) H {
	return gh.Nav(retype(children)...)
}

func Option(children ...H) H {
	return gh.Option(retype(children)...)
}

func P(children ...H) H {
	return gh.P(retype(children)...)
}

func Script(children ...H) H {
	return gh.Script(retype(children)...)
}

func Section(children ...H) H {
	return gh.Section(retype(children)...)
}

func Select(children ...H) H {
	return gh.Select(retype(children)...)
}

func Span(children ...H) H {
	return gh.Span(retype(children)...)
}
