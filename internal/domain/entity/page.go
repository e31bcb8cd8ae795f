package entity

// ElementCheck is the structured record returned by check_element_exists.
// Absence is reported through Exists=false, never through an error.
type ElementCheck struct {
	Selector string `json:"selector"`
	Exists   bool   `json:"exists"`
	Visible  bool   `json:"visible,omitempty"`
	Enabled  bool   `json:"enabled,omitempty"`
	Text     string `json:"text,omitempty"`
}

// PageInfo summarizes the current page. Category counts default to zero when
// their sub-query fails; one broken query must not abort the report.
type PageInfo struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Buttons int    `json:"buttons"`
	Links   int    `json:"links"`
	Inputs  int    `json:"inputs"`
	Forms   int    `json:"forms"`
	Images  int    `json:"images"`
	Tables  int    `json:"tables"`
}

// DiscoveredElement describes one element found by the discovery tools.
// Selector is synthesized (id, first class token, or tag position) and is
// only valid until the surrounding DOM changes.
type DiscoveredElement struct {
	Tag      string `json:"tag"`
	Selector string `json:"selector"`
	Text     string `json:"text,omitempty"`
	Type     string `json:"type,omitempty"`
	Name     string `json:"name,omitempty"`
	ID       string `json:"id,omitempty"`
	Visible  bool   `json:"visible"`
	Enabled  bool   `json:"enabled"`
}

type ElementList struct {
	Count    int                 `json:"count"`
	Elements []DiscoveredElement `json:"elements"`
}
