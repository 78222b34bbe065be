package importer

import (
	"encoding/json"
	"fmt"

	"github.com/asso-refuge/wpmigrate/internal/models"
	"github.com/asso-refuge/wpmigrate/internal/sqldump"
	"github.com/asso-refuge/wpmigrate/internal/store"
)

// PluginDataImporter preserves every row of each detected plugin table
// as an opaque attribute bag, linked to the content item its row
// references when a foreign-key heuristic resolves one.
type PluginDataImporter struct {
	dump   *sqldump.Dump
	store  *store.Store
	report *Report

	postMap map[int]*models.Post
	pageMap map[int]*models.Page
}

// fkCandidates are the column names plugin tables use to reference a
// post; the first one present in a row wins.
var fkCandidates = []string{"post_id", "post_ID", "object_id"}

// Run clears and re-imports all plugin rows. Plugin rows carry no
// usable external id, so idempotence comes from the upfront clear.
func (pi *PluginDataImporter) Run() error {
	if err := pi.store.DeleteAllPluginData(); err != nil {
		return err
	}

	total := 0
	for pluginName, tableNames := range pi.dump.PluginTables() {
		for _, tableName := range tableNames {
			table := pi.dump.Tables[tableName]
			if table == nil {
				continue
			}
			for _, row := range table.Rows {
				bag, err := serializeRow(row)
				if err != nil {
					pi.report.Warn("plugin row in %s not serializable: %v", tableName, err)
					continue
				}
				postID, pageID := pi.resolveLink(row)
				if err := pi.store.AddPluginData(&models.PluginData{
					PluginName:  pluginName,
					SourceTable: tableName,
					Data:        bag,
					PostID:      postID,
					PageID:      pageID,
				}); err != nil {
					return err
				}
				total++
			}
		}
	}

	pi.report.PluginRows = total
	return nil
}

func (pi *PluginDataImporter) resolveLink(row sqldump.Row) (postID, pageID *int64) {
	for _, key := range fkCandidates {
		if _, ok := row[key]; !ok {
			continue
		}
		id := row.Int(key)
		if post, ok := pi.postMap[id]; ok {
			return &post.ID, nil
		}
		if page, ok := pi.pageMap[id]; ok {
			return nil, &page.ID
		}
		return nil, nil
	}
	return nil, nil
}

// serializeRow converts a parsed row to a JSON object. Values are
// already scalars; anything unexpected is stringified.
func serializeRow(row sqldump.Row) (string, error) {
	bag := make(map[string]any, len(row))
	for key, value := range row {
		switch value.(type) {
		case nil, int64, float64, string, bool:
			bag[key] = value
		default:
			bag[key] = fmt.Sprintf("%v", value)
		}
	}
	data, err := json.Marshal(bag)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
