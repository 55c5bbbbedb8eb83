package calendar

// DefaultMobileBreakpoint is the widest viewport treated as mobile.
const DefaultMobileBreakpoint = 768

// ViewportInfo describes the host display. It is passed in by the caller
// instead of being read from global state.
type ViewportInfo struct {
	Width      int
	Breakpoint int
}

// Mobile reports whether the viewport is narrow. An unknown width is desktop.
func (v ViewportInfo) Mobile() bool {
	bp := v.Breakpoint
	if bp <= 0 {
		bp = DefaultMobileBreakpoint
	}
	return v.Width > 0 && v.Width <= bp
}
