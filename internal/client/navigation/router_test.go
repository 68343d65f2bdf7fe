package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_ReplaceNotifiesListeners(t *testing.T) {
	r := NewRouter(RoutePublic, nil)

	var seen [][2]string
	r.OnChange(func(from, to string) { seen = append(seen, [2]string{from, to}) })

	r.Replace(RouteHome)
	r.Replace(RouteRedirected)

	assert.Equal(t, RouteRedirected, r.Current())
	assert.Equal(t, [][2]string{{RoutePublic, RouteHome}, {RouteHome, RouteRedirected}}, seen)
}

func TestPathAndMarker(t *testing.T) {
	assert.Equal(t, "/", Path(RouteRedirected))
	assert.Equal(t, "/usuarios", Path("/usuarios"))

	assert.True(t, IsRedirected(RouteRedirected))
	assert.True(t, IsRedirected("/?a=1&redirected=true"))
	assert.False(t, IsRedirected("/"))
	assert.False(t, IsRedirected("/?redirect"))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains(AdminRoutes, RouteUsers))
	assert.True(t, Contains(AdminRoutes, "/empresas?page=2"))
	assert.False(t, Contains(AdminRoutes, RouteInstance))
}
