package importer

import (
	"strconv"

	"github.com/asso-refuge/wpmigrate/internal/models"
	"github.com/asso-refuge/wpmigrate/internal/sqldump"
	"github.com/asso-refuge/wpmigrate/internal/store"
)

// MenuImporter imports nav_menu taxonomy terms as menus and
// nav_menu_item posts as their entries. Items resolve to imported
// content via their legacy type/object-id metadata where possible and
// keep the literal URL otherwise.
type MenuImporter struct {
	dump   *sqldump.Dump
	store  *store.Store
	report *Report

	postMap map[int]*models.Post
	pageMap map[int]*models.Page
	catMap  map[int]*models.Category
}

type menuItemData struct {
	wpID       int
	menu       *models.Menu
	title      string
	url        string
	target     string
	cssClasses string
	position   int
	parentWPID int
	objectType string
	objectID   string
	object     string
}

// Run creates menus and their items.
func (mi *MenuImporter) Run() error {
	termNames := make(map[int]struct{ name, slug string })
	for _, row := range mi.dump.GetTable("terms").Rows {
		termNames[row.Int("term_id")] = struct{ name, slug string }{
			name: row.String("name"),
			slug: row.String("slug"),
		}
	}

	ttidToTid := make(map[int]int)
	menuTermIDs := make(map[int]bool)
	for _, row := range mi.dump.GetTable("term_taxonomy").Rows {
		ttidToTid[row.Int("term_taxonomy_id")] = row.Int("term_id")
		if row.String("taxonomy") == "nav_menu" {
			menuTermIDs[row.Int("term_id")] = true
		}
	}

	menuMap := make(map[int]*models.Menu)
	for tid := range menuTermIDs {
		data := termNames[tid]
		if data.name == "" {
			continue
		}
		slug := data.slug
		if slug == "" {
			slug = Slugify(data.name)
		}
		menu, _, err := mi.store.GetOrCreateMenu(tid, &models.Menu{Name: data.name, Slug: slug})
		if err != nil {
			return err
		}
		menuMap[tid] = menu
	}

	objToTids := make(map[int][]int)
	for _, row := range mi.dump.GetTable("term_relationships").Rows {
		oid := row.Int("object_id")
		if tid, ok := ttidToTid[row.Int("term_taxonomy_id")]; ok {
			objToTids[oid] = append(objToTids[oid], tid)
		}
	}

	postmeta := metaLookup(mi.dump.GetTable("postmeta"), "post_id")

	var items []menuItemData
	for _, row := range mi.dump.GetTable("posts").Rows {
		if row.String("post_type") != "nav_menu_item" {
			continue
		}
		wpID := row.Int("ID")
		meta := postmeta[wpID]

		var menu *models.Menu
		for _, tid := range objToTids[wpID] {
			if m, ok := menuMap[tid]; ok {
				menu = m
				break
			}
		}
		if menu == nil {
			continue
		}

		title := row.String("post_title")
		if title == "" {
			title = meta["_menu_item_title"]
		}
		parentWPID, _ := strconv.Atoi(meta["_menu_item_menu_item_parent"])
		items = append(items, menuItemData{
			wpID:       wpID,
			menu:       menu,
			title:      title,
			url:        meta["_menu_item_url"],
			target:     meta["_menu_item_target"],
			cssClasses: meta["_menu_item_classes"],
			position:   row.Int("menu_order"),
			parentWPID: parentWPID,
			objectType: meta["_menu_item_type"],
			objectID:   meta["_menu_item_object_id"],
			object:     meta["_menu_item_object"],
		})
	}

	itemMap := make(map[int]*models.MenuItem)
	for _, data := range items {
		defaults := &models.MenuItem{
			MenuID:     data.menu.ID,
			Title:      data.title,
			URL:        data.url,
			Target:     data.target,
			CSSClasses: data.cssClasses,
			Position:   data.position,
		}
		mi.resolveTarget(data, defaults)
		item, _, err := mi.store.GetOrCreateMenuItem(data.wpID, defaults)
		if err != nil {
			return err
		}
		itemMap[data.wpID] = item
	}

	for _, data := range items {
		if data.parentWPID == 0 {
			continue
		}
		child, okChild := itemMap[data.wpID]
		parent, okParent := itemMap[data.parentWPID]
		if !okChild || !okParent {
			continue
		}
		if err := mi.store.UpdateMenuItem(child.ID, map[string]any{"parent_id": parent.ID}); err != nil {
			return err
		}
	}

	mi.report.Menus = len(menuMap)
	mi.report.MenuItems = len(itemMap)
	return nil
}

// resolveTarget links a menu item to the imported row it points at,
// filling the content type, the legacy object id and the matching
// linked foreign key. Unresolvable targets fall back to the item's
// literal URL (content type empty).
func (mi *MenuImporter) resolveTarget(data menuItemData, item *models.MenuItem) {
	id, err := strconv.Atoi(data.objectID)
	if err != nil {
		return
	}
	switch data.objectType {
	case "post_type":
		// data.object is "post" or "page".
		if data.object == "post" {
			if post, ok := mi.postMap[id]; ok {
				item.ContentType = "post"
				item.ObjectID = &id
				item.LinkedPostID = &post.ID
				return
			}
			mi.report.Warn("menu item %d references missing post %d", data.wpID, id)
		}
		if data.object == "page" {
			if page, ok := mi.pageMap[id]; ok {
				item.ContentType = "page"
				item.ObjectID = &id
				item.LinkedPageID = &page.ID
				return
			}
			mi.report.Warn("menu item %d references missing page %d", data.wpID, id)
		}
	case "taxonomy":
		if data.object == "category" {
			if cat, ok := mi.catMap[id]; ok {
				item.ContentType = "category"
				item.ObjectID = &id
				item.LinkedCategoryID = &cat.ID
				return
			}
			mi.report.Warn("menu item %d references missing category %d", data.wpID, id)
		}
	}
}
