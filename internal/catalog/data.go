// Package catalog resolves tool groups and the category tree into the tool
// catalog: tools by name plus the index, category, search and cross-notice
// tables that the tool page embeds as JSON.
package catalog

import (
	"strings"

	"git.home.luguber.info/inful/pagegen/internal/schema"
)

// IndexEntry is one visible group of the tool index.
type IndexEntry struct {
	Title        string   `json:"title"`
	Single       bool     `json:"single"`
	List         []string `json:"list"`
	CrossList    []string `json:"cross_list"`
	CrossTopList []string `json:"cross_top_list"`
}

// CategoryEntry is one category and its member tools.
type CategoryEntry struct {
	Title string   `json:"title"`
	List  []string `json:"list"`
}

// ToolData is the resolved catalog payload.
type ToolData struct {
	Index    *schema.Map[*IndexEntry]         `json:"index"`
	Category *schema.Map[*CategoryEntry]      `json:"category"`
	All      *schema.Map[string]              `json:"all"`
	Cross    *schema.Map[*schema.Map[string]] `json:"cross"`
}

// Catalog is the resolver result.
type Catalog struct {
	Tools *schema.Map[schema.Tool]
	Data  *ToolData
}

// Page types carried in the embedded global data.
const (
	PageHome = "home"
	PageTool = "tool"
)

// GlobalData is the per-page JSON payload.
type GlobalData struct {
	PageType string    `json:"page_type"`
	Tool     *ToolData `json:"tool,omitempty"`
}

// HomeData is the payload of the home page.
func HomeData() GlobalData {
	return GlobalData{PageType: PageHome}
}

// ToolPageData is the payload of the tool page.
func (c *Catalog) ToolPageData() GlobalData {
	return GlobalData{PageType: PageTool, Tool: c.Data}
}

// JSON serializes the payload with map order preserved. Markup in notices is
// kept as written; only "</" is escaped so the payload cannot close the
// script element that carries it.
func (g GlobalData) JSON() (string, error) {
	b, err := schema.MarshalJSON(g)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(b), "</", `<\/`), nil
}
