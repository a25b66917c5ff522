package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/localtalent/console/internal/core/domain"
)

// RouteRecorder remembers the last route the client was sent to. The console
// server reads it to turn a failed refresh into a redirect response.
type RouteRecorder struct {
	mu    sync.Mutex
	route string
}

func NewRouteRecorder() *RouteRecorder {
	return &RouteRecorder{}
}

func (r *RouteRecorder) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.route = route
}

// Take returns the pending route, if any, and resets it.
func (r *RouteRecorder) Take() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	route := r.route
	r.route = ""
	return route, route != ""
}

// RoutePrinter tells a terminal user where to go next.
type RoutePrinter struct {
	out io.Writer
}

func NewRoutePrinter(out io.Writer) *RoutePrinter {
	return &RoutePrinter{out: out}
}

func (p *RoutePrinter) Navigate(route string) {
	switch route {
	case domain.RouteLogin:
		fmt.Fprintln(p.out, "Session ended. Sign in again with: localtalent login")
	case domain.RouteAdmin:
		fmt.Fprintln(p.out, "Signed in. Manage your listings with: localtalent services list")
	default:
		fmt.Fprintf(p.out, "→ %s\n", route)
	}
}
