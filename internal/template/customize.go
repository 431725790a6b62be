package template

import (
	"strings"

	"broadcast-srv/internal/model"
)

// Customize returns the canned template for an emergency type with every
// literal {{key}} placeholder replaced from vars. Unknown placeholders are
// left as-is.
func Customize(t model.EmergencyType, vars map[string]string) Entry {
	e := Get(t)
	e.Title = substitute(e.Title, vars)
	e.Message = substitute(e.Message, vars)
	return e
}

func substitute(s string, vars map[string]string) string {
	for key, value := range vars {
		s = strings.ReplaceAll(s, "{{"+key+"}}", value)
	}
	return s
}
