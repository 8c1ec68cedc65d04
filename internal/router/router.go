package router

import (
	"encoding/csv"
	"errors"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var (
	// ErrNotMatched is returned when unknown command is issued
	ErrNotMatched = errors.New("command not matched")
)

// Router implements routing dispatch
type Router struct {
	Routes             map[string]*Route
	GroupSorter        GroupSorterFunc
	DefaultRouteSorter RouteSorterFunc
	Groups             []*Group
	Middleware         []MiddlewareFunc
}

// Dispatch tries to find matching route and execute it.
// Messages from bots, including ourselves (userID), are ignored.
func (router *Router) Dispatch(session *discordgo.Session, prefix, userID string, msg *discordgo.Message) error {
	if msg.Author == nil || msg.Author.ID == userID || msg.Author.Bot {
		return nil
	}

	raw := msg.Content
	if prefix == "" || !strings.HasPrefix(raw, prefix) {
		return nil
	}

	raw = strings.TrimSpace(strings.TrimPrefix(raw, prefix))
	if raw == "" {
		return nil
	}

	reader := csv.NewReader(strings.NewReader(raw))
	reader.Comma = ' '
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	args, err := reader.Read()
	if err != nil {
		return err
	}

	r := router.Match(raw)
	if r == nil {
		return ErrNotMatched
	}

	return r.Baked()(&Context{
		Session: session,
		Message: msg,
		Route:   r,
		Args:    args,
	})
}

// Match returns route matching raw command line, sans prefix
func (router *Router) Match(raw string) *Route {
	for _, g := range router.Groups {
		for _, r := range g.Routes {
			if r.Matcher(raw) {
				return r
			}
		}
	}

	return nil
}

// Group returns group with given name
func (router *Router) Group(name string) (cand *Group) {
	cand = &Group{
		Name:        name,
		RouteSorter: router.DefaultRouteSorter,
		Router:      router,
		Data:        make(map[string]interface{}),
	}
	i := sort.Search(len(router.Groups), func(i int) bool {
		return router.GroupSorter(router.Groups[i], cand)
	})

	if i == len(router.Groups) || router.Groups[i].Name != name {
		router.Groups = append(router.Groups[:i], append([]*Group{cand}, router.Groups[i:]...)...)
	} else {
		cand = router.Groups[i]
	}

	return
}

// Route return route with given parameters
func (router *Router) Route(matcher MatcherFunc, name, desc string, handler HandlerFunc) (route *Route) {
	var ok bool
	if route, ok = router.Routes[name]; !ok {
		route = &Route{
			Name:        name,
			Description: desc,
			Matcher:     matcher,
			Handler:     handler,
			Router:      router,
			Data:        make(map[string]interface{}),
		}
		router.Routes[name] = route
	}

	return
}

func nameMatcher(name string) MatcherFunc {
	return nameAliasMatcher(name, nil)
}

func nameAliasMatcher(name string, alias []string) MatcherFunc {
	return func(raw string) bool {
		parts := strings.Fields(raw)

		if len(parts) == 0 {
			return false
		}

		if parts[0] == name {
			return true
		}

		for _, a := range alias {
			if parts[0] == a {
				return true
			}
		}

		return false
	}
}

// On creates new route in given group using name matcher
func (router *Router) On(group, name, desc string, handler HandlerFunc) (route *Route) {
	return router.Group(group).On(name, desc, handler)
}

// AppendMiddleware append middleware to end of the chain
func (router *Router) AppendMiddleware(middleware MiddlewareFunc) {
	router.Middleware = append(router.Middleware, middleware)
}

// PrependMiddleware append middleware to beginning of the chain
func (router *Router) PrependMiddleware(middleware MiddlewareFunc) {
	router.Middleware = append([]MiddlewareFunc{middleware}, router.Middleware...)
}
