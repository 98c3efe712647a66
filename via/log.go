package via

import (
	"fmt"
	"log"
)

func (v *V) logAt(lvl LogLevel, tag string, c *Context, format string, a ...any) {
	if v == nil || v.cfg.LogLvl < lvl {
		return
	}
	cRef := ""
	if c != nil && c.s != nil && c.s.id != "" {
		cRef = fmt.Sprintf("via-ctx=%q ", c.s.id)
	}
	log.Printf("[%s] %smsg=%q", tag, cRef, fmt.Sprintf(format, a...))
}

func (v *V) logErr(c *Context, format string, a ...any) {
	v.logAt(LogLevelError, "error", c, format, a...)
}

func (v *V) logWarn(c *Context, format string, a ...any) {
	v.logAt(LogLevelWarn, "warn", c, format, a...)
}

func (v *V) logInfo(c *Context, format string, a ...any) {
	v.logAt(LogLevelInfo, "info", c, format, a...)
}

func (v *V) logDebug(c *Context, format string, a ...any) {
	v.logAt(LogLevelDebug, "debug", c, format, a...)
}
