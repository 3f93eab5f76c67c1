package compiler

// Insert tokens replaced by generated fragments.
const (
	TokenHomeMajor      = "<!--{{codegen-home-major}}-->"
	TokenHomeFragments  = "<!--{{codegen-home-fragments}}-->"
	TokenToolFragments  = "<!--{{codegen-tool-fragments}}-->"
	TokenToolPlain      = "<!--{{codegen-tool-plain}}-->"
	TokenLegacyButtons  = "<!--{{codegen-legacy-buttons}}-->"
	TokenGlobalData     = "<!--{{codegen-global-data}}-->"
	globalDataScriptTag = `<script id="global-data" type="application/json">`
)
