package fleet

import "strings"

// FilterByText keeps the views whose equipment name or model name contains
// text, ignoring case. Blank text returns views unchanged; otherwise text is
// matched as given, surrounding spaces included.
func FilterByText(views []EquipmentWithDetails, text string) []EquipmentWithDetails {
	if strings.TrimSpace(text) == "" {
		return views
	}
	needle := strings.ToLower(text)

	filtered := make([]EquipmentWithDetails, 0, len(views))
	for _, v := range views {
		if strings.Contains(strings.ToLower(v.Name), needle) ||
			strings.Contains(strings.ToLower(v.Model.Name), needle) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// FilterByID keeps the view with the given equipment id. An empty id resets
// the selection and returns views unchanged.
func FilterByID(views []EquipmentWithDetails, id string) []EquipmentWithDetails {
	if id == "" {
		return views
	}

	filtered := make([]EquipmentWithDetails, 0, 1)
	for _, v := range views {
		if v.ID == id {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
