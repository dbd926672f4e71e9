package model

// tabs is the compiled-in source list. Order is display order.
var tabs = [...]Tab{
	{ID: 1, Label: "Node", Endpoint: "https://dev.to/api/articles?tag=node"},
	{ID: 2, Label: "React", Endpoint: "https://dev.to/api/articles?tag=react"},
	{ID: 3, Label: "Redux", Endpoint: "https://dev.to/api/articles?tag=redux"},
}

// Tabs returns the registry in display order. The slice is a copy.
func Tabs() []Tab {
	out := make([]Tab, len(tabs))
	copy(out, tabs[:])
	return out
}

// FirstTab returns the tab selected on startup.
func FirstTab() Tab {
	return tabs[0]
}

// LookupTab resolves a tab by ID.
func LookupTab(id int) (Tab, bool) {
	for _, t := range tabs {
		if t.ID == id {
			return t, true
		}
	}
	return Tab{}, false
}

// TabIndex returns the display position of id, or -1.
func TabIndex(id int) int {
	for i, t := range tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}
