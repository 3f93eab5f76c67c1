package catalog

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	ferrors "git.home.luguber.info/inful/pagegen/internal/foundation/errors"
	"git.home.luguber.info/inful/pagegen/internal/schema"
)

// Resolve builds the catalog from tool groups and the category tree.
//
// Categories declared by category tiles and groups carrying a cross notice
// are registered first, then every tool is registered against them, and a
// final pass fills the cross listings once all groups are indexed. Any
// duplicate name or undeclared reference fails the whole resolution.
func Resolve(groups []schema.ToolGroup, category schema.Category) (*Catalog, error) {
	r := &resolver{
		tools:      schema.NewMap[schema.Tool](),
		index:      schema.NewMap[*IndexEntry](),
		categories: schema.NewMap[*CategoryEntry](),
		all:        schema.NewMap[string](),
		cross:      schema.NewMap[*schema.Map[string]](),
		noticeHead: schema.NewMap[string](),
	}
	if err := r.declareCategories(category); err != nil {
		return nil, err
	}
	if err := r.declareCrossGroups(groups); err != nil {
		return nil, err
	}
	for i := range groups {
		if err := r.registerGroup(groups[i]); err != nil {
			return nil, err
		}
	}
	if err := r.fillCrossLists(groups); err != nil {
		return nil, err
	}
	return &Catalog{
		Tools: r.tools,
		Data: &ToolData{
			Index:    r.index,
			Category: r.categories,
			All:      r.all,
			Cross:    r.cross,
		},
	}, nil
}

type resolver struct {
	tools      *schema.Map[schema.Tool]
	index      *schema.Map[*IndexEntry]
	categories *schema.Map[*CategoryEntry]
	all        *schema.Map[string]
	cross      *schema.Map[*schema.Map[string]]
	noticeHead *schema.Map[string]
}

func (r *resolver) declareCategories(category schema.Category) error {
	for _, tab := range category.Tabs() {
		for _, group := range tab.Content {
			for _, item := range group.Content {
				if item.Action != schema.ActionCategory {
					continue
				}
				if item.Title == "" {
					return configError("category tile requires a title", "category", item.Name)
				}
				entry := &CategoryEntry{Title: item.Title, List: []string{}}
				if err := r.categories.Insert(item.Name, entry); err != nil {
					return duplicate(err, "duplicate category", "category")
				}
			}
		}
	}
	return nil
}

func (r *resolver) declareCrossGroups(groups []schema.ToolGroup) error {
	for _, g := range groups {
		if g.Name == "" || g.CrossNotice == "" {
			continue
		}
		if err := r.noticeHead.Insert(g.Name, g.CrossNotice); err != nil {
			return duplicate(err, "duplicate cross-notice group", "group")
		}
		if err := r.cross.Insert(g.Name, schema.NewMap[string]()); err != nil {
			return duplicate(err, "duplicate cross-notice group", "group")
		}
	}
	return nil
}

func (r *resolver) registerGroup(g schema.ToolGroup) error {
	single := g.Single()
	key := g.Key()
	if key == "" {
		return configError("unnamed tool group must hold exactly one tool", "tools", len(g.List))
	}

	list := make([]string, 0, len(g.List))
	for _, tool := range g.List {
		if tool.Name == "" {
			return configError("tool requires a name", "group", key)
		}
		if tool.NoIcon == nil && g.NoIcon != nil {
			inherited := *g.NoIcon
			tool.NoIcon = &inherited
		}
		list = append(list, tool.Name)

		if err := r.tools.Insert(tool.Name, tool); err != nil {
			return duplicate(err, "duplicate tool name", "tool")
		}
		if err := r.all.Insert(SearchKey(tool), tool.Name); err != nil {
			return duplicate(err, "duplicate search key", "key").WithContext("tool", tool.Name)
		}
		if err := r.registerCrossNotices(tool); err != nil {
			return err
		}
		if err := r.registerCategories(tool); err != nil {
			return err
		}
	}

	if g.Name == schema.NonIndexGroup {
		return nil
	}
	title := g.DisplayTitle()
	if title == "" {
		return configError("tool group requires a title", "group", key)
	}
	entry := &IndexEntry{
		Title:        title,
		Single:       single,
		List:         list,
		CrossList:    []string{},
		CrossTopList: []string{},
	}
	if err := r.index.Insert(key, entry); err != nil {
		return duplicate(err, "duplicate tool group", "group")
	}
	return nil
}

func (r *resolver) registerCrossNotices(tool schema.Tool) error {
	for group, notice := range tool.CrossNotice.All() {
		notices, ok := r.cross.Get(group)
		if !ok {
			return configError("cross notice names an undeclared group", "group", group).WithContext("tool", tool.Name)
		}
		head, _ := r.noticeHead.Get(group)
		if err := notices.Insert(tool.Name, CrossNoticeHTML(head, notice)); err != nil {
			return duplicate(err, "duplicate cross notice", "tool").WithContext("group", group)
		}
	}
	return nil
}

func (r *resolver) registerCategories(tool schema.Tool) error {
	for _, name := range tool.Category {
		entry, ok := r.categories.Get(name)
		if !ok {
			return configError("tool names an undeclared category", "category", name).WithContext("tool", tool.Name)
		}
		if slices.Contains(entry.List, tool.Name) {
			return configError("tool lists a category twice", "category", name).WithContext("tool", tool.Name)
		}
		entry.List = append(entry.List, tool.Name)
	}
	return nil
}

func (r *resolver) fillCrossLists(groups []schema.ToolGroup) error {
	for _, g := range groups {
		for _, tool := range g.List {
			for _, name := range tool.Cross {
				entry, ok := r.index.Get(name)
				if !ok {
					return configError("tool is cross-listed under an unindexed group", "group", name).WithContext("tool", tool.Name)
				}
				entry.CrossList = append(entry.CrossList, tool.Name)
			}
			for _, name := range tool.CrossTop {
				entry, ok := r.index.Get(name)
				if !ok {
					return configError("tool is cross-listed under an unindexed group", "group", name).WithContext("tool", tool.Name)
				}
				entry.CrossTopList = append(entry.CrossTopList, tool.Name)
			}
		}
	}
	return nil
}

// SearchKey is the composite lookup key of a tool: its title followed by its
// keywords, NFC-normalized so visually equal keys collide.
func SearchKey(tool schema.Tool) string {
	return norm.NFC.String(tool.Title + tool.Keywords)
}

// CrossNoticeHTML renders a group's notice heading above a tool's notice.
func CrossNoticeHTML(head, notice string) string {
	var b strings.Builder
	b.WriteString("<b>")
	b.WriteString(head)
	b.WriteString("</b><br>")
	b.WriteString(notice)
	return b.String()
}

func configError(msg, key string, value any) *ferrors.ClassifiedError {
	return ferrors.ConfigError(msg).WithContext(key, value).Build()
}

func duplicate(err error, msg, key string) *ferrors.ClassifiedError {
	var dup *schema.DuplicateKeyError
	if errors.As(err, &dup) {
		return configError(msg, key, dup.Key)
	}
	return ferrors.WrapError(err, ferrors.CategoryInternal, msg).Fatal().Build()
}
