package notion

// Parent is the typed pointer stating where a new page lives. It must be
// constructed fresh at the point of use and handed to the transport as a
// structured value, never as a pre-serialised string.
type Parent struct {
	Type       string `json:"type"`
	DatabaseID string `json:"database_id,omitempty"`
	PageID     string `json:"page_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

// DatabaseParent returns a parent scoped to a database (collection).
func DatabaseParent(id string) Parent {
	return Parent{Type: "database_id", DatabaseID: NormalizeID(id)}
}

// PageParent returns a parent scoped to an existing page.
func PageParent(id string) Parent {
	return Parent{Type: "page_id", PageID: NormalizeID(id)}
}

// WorkspaceParent returns a parent scoped to the workspace root.
func WorkspaceParent() Parent {
	return Parent{Type: "workspace", Workspace: true}
}

// Properties is a page property map keyed by schema field name.
type Properties map[string]any

// TitleProperty builds a title property value.
func TitleProperty(text string) any {
	return map[string]any{
		"title": []any{
			map[string]any{"text": map[string]any{"content": text}},
		},
	}
}

// RichTextProperty builds a rich_text property value.
func RichTextProperty(text string) any {
	return map[string]any{
		"rich_text": []any{
			map[string]any{"text": map[string]any{"content": text}},
		},
	}
}

// DateProperty builds a date property value from an ISO-8601 date string.
func DateProperty(start string) any {
	return map[string]any{"date": map[string]any{"start": start}}
}

// CheckboxProperty builds a checkbox property value.
func CheckboxProperty(checked bool) any {
	return map[string]any{"checkbox": checked}
}

// SelectProperty builds a single-select property value.
func SelectProperty(name string) any {
	return map[string]any{"select": map[string]any{"name": name}}
}
