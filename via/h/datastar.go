package h

import "fmt"

// DataInit runs the Datastar expression once the element is initialised.
func DataInit(format string, a ...any) H {
	return Data("init", fmt.Sprintf(format, a...))
}

// DataShow toggles the element's display with the given expression.
func DataShow(expr string) H {
	return Data("show", expr)
}

// DataClass adds class when expr is truthy.
func DataClass(class, expr string) H {
	return Data("class:"+class, expr)
}

// DataAttr binds the attribute name to expr.
func DataAttr(name, expr string) H {
	return Data("attr:"+name, expr)
}

func DataOnClick(v string) H {
	return Data("on:click", v)
}
