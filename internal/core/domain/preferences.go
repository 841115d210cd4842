package domain

// Theme is the stored theme preference. Only the preference itself is
// persisted; the resolved value is derived at runtime.
type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

// ColorScheme is a concrete, renderable scheme. ThemeSystem always
// resolves to one of these.
type ColorScheme string

const (
	SchemeDark  ColorScheme = "dark"
	SchemeLight ColorScheme = "light"
)

// ParseTheme validates a stored theme value. Unrecognised values fall
// back to ThemeSystem so a corrupt store never surfaces as an error.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeDark, ThemeLight, ThemeSystem:
		return Theme(s)
	default:
		return ThemeSystem
	}
}

// Resolve maps a theme preference to a concrete scheme. ThemeSystem
// tracks the live system scheme; anything else resolves to itself.
func (t Theme) Resolve(system ColorScheme) ColorScheme {
	switch t {
	case ThemeDark:
		return SchemeDark
	case ThemeLight:
		return SchemeLight
	default:
		return system
	}
}

// SidebarLayout is the persisted sidebar arrangement.
type SidebarLayout string

const (
	SidebarGrouped SidebarLayout = "grouped"
	SidebarFlat    SidebarLayout = "flat"
)

// ParseSidebarLayout validates a stored layout value, silently discarding
// anything outside the known enum in favour of the grouped default.
func ParseSidebarLayout(s string) SidebarLayout {
	switch SidebarLayout(s) {
	case SidebarGrouped, SidebarFlat:
		return SidebarLayout(s)
	default:
		return SidebarGrouped
	}
}

// DashboardPreferences is the remotely owned preference document,
// mirrored locally by the query cache. VisibleWidgets holds no
// duplicate ids after any mutation.
type DashboardPreferences struct {
	PresetType     string            `json:"preset_type"`
	VisibleWidgets []string          `json:"visible_widgets"`
	WidgetSizes    map[string]string `json:"widget_sizes"`
	Layout         map[string]any    `json:"layout,omitempty"`
}

// DefaultPreset is applied when a user has no preference document yet.
const DefaultPreset = "developer"

// presetDefaults defines the widget configuration each preset starts from.
var presetDefaults = map[string]DashboardPreferences{
	"developer": {
		PresetType:     "developer",
		VisibleWidgets: []string{"commit_activity", "open_prs", "review_latency", "tickets_assigned"},
		WidgetSizes:    map[string]string{"commit_activity": "large", "open_prs": "medium", "review_latency": "medium", "tickets_assigned": "small"},
	},
	"manager": {
		PresetType:     "manager",
		VisibleWidgets: []string{"team_velocity", "leave_calendar", "hiring_pipeline", "open_tickets"},
		WidgetSizes:    map[string]string{"team_velocity": "large", "leave_calendar": "medium", "hiring_pipeline": "medium", "open_tickets": "small"},
	},
	"support": {
		PresetType:     "support",
		VisibleWidgets: []string{"ticket_queue", "sla_breaches", "csat_trend"},
		WidgetSizes:    map[string]string{"ticket_queue": "large", "sla_breaches": "medium", "csat_trend": "medium"},
	},
}

// PresetDefaults returns a copy of the named preset's default document.
func PresetDefaults(preset string) (DashboardPreferences, error) {
	p, ok := presetDefaults[preset]
	if !ok {
		return DashboardPreferences{}, ErrUnknownPreset
	}
	return clonePreferences(p), nil
}

// ToggleWidget returns the visible-widget list with id added if absent or
// removed if present. The input is never mutated and the result is
// guaranteed duplicate-free even if the input was not.
func ToggleWidget(visible []string, id string) []string {
	out := make([]string, 0, len(visible)+1)
	found := false
	for _, w := range visible {
		if w == id {
			found = true
			continue
		}
		out = append(out, w)
	}
	if !found {
		out = append(out, id)
	}
	return DedupeWidgets(out)
}

// DedupeWidgets returns ids with duplicates removed, preserving first
// occurrence order. The input is not mutated.
func DedupeWidgets(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func clonePreferences(p DashboardPreferences) DashboardPreferences {
	c := DashboardPreferences{PresetType: p.PresetType}
	c.VisibleWidgets = append([]string(nil), p.VisibleWidgets...)
	if p.WidgetSizes != nil {
		c.WidgetSizes = make(map[string]string, len(p.WidgetSizes))
		for k, v := range p.WidgetSizes {
			c.WidgetSizes[k] = v
		}
	}
	if p.Layout != nil {
		c.Layout = make(map[string]any, len(p.Layout))
		for k, v := range p.Layout {
			c.Layout[k] = v
		}
	}
	return c
}
