package router

import (
	"sort"

	"basketball-manager/internal/transport/http/ez"
)

// APIModule mounts user endpoints: public ones on pub, the rest on user
// (which requires a token).
type APIModule interface{ MountAPI(pub, user ez.EZ) }

// AdminModule mounts endpoints under /admin/v1.
type AdminModule interface{ MountAdmin(admin ez.EZ) }

// Modules may implement prioritizer to mount earlier (lower first); the
// default is 100.
type prioritizer interface{ Priority() int }

// Registry collects modules; a module may implement both interfaces.
type Registry struct {
	api   []APIModule
	admin []AdminModule
}

func (r *Registry) Register(mods ...any) {
	for _, mod := range mods {
		if m, ok := mod.(APIModule); ok {
			r.api = append(r.api, m)
		}
		if m, ok := mod.(AdminModule); ok {
			r.admin = append(r.admin, m)
		}
	}
}

func (r *Registry) MountAllAPI(pub, user ez.EZ) {
	mods := append([]APIModule(nil), r.api...)
	sort.SliceStable(mods, func(i, j int) bool { return priorityOf(mods[i]) < priorityOf(mods[j]) })
	for _, m := range mods {
		m.MountAPI(pub, user)
	}
}

func (r *Registry) MountAllAdmin(admin ez.EZ) {
	mods := append([]AdminModule(nil), r.admin...)
	sort.SliceStable(mods, func(i, j int) bool { return priorityOf(mods[i]) < priorityOf(mods[j]) })
	for _, m := range mods {
		m.MountAdmin(admin)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
