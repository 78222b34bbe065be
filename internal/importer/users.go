package importer

import (
	"github.com/asso-refuge/wpmigrate/internal/models"
	"github.com/asso-refuge/wpmigrate/internal/sqldump"
	"github.com/asso-refuge/wpmigrate/internal/store"
)

// UserImporter imports wp_users rows into author accounts.
type UserImporter struct {
	dump   *sqldump.Dump
	store  *store.Store
	report *Report
}

// Run creates users and returns the legacy-id map for later stages.
func (ui *UserImporter) Run() (map[int]*models.User, error) {
	userMap := make(map[int]*models.User)
	meta := metaLookup(ui.dump.GetTable("usermeta"), "user_id")

	for _, row := range ui.dump.GetTable("users").Rows {
		wpID := row.Int("ID")
		login := row.String("user_login")
		if login == "" {
			continue
		}
		display := row.String("display_name")
		if display == "" {
			display = login
		}
		user, _, err := ui.store.GetOrCreateUser(wpID, &models.User{
			Username:    login,
			Email:       row.String("user_email"),
			FirstName:   meta[wpID]["first_name"],
			LastName:    meta[wpID]["last_name"],
			DisplayName: display,
		})
		if err != nil {
			return nil, err
		}
		userMap[wpID] = user
	}

	ui.report.Users = len(userMap)
	return userMap, nil
}

// metaLookup builds id -> {meta_key: meta_value} from a *meta table.
func metaLookup(table *sqldump.Table, idCol string) map[int]map[string]string {
	lookup := make(map[int]map[string]string)
	for _, row := range table.Rows {
		id := row.Int(idCol)
		if lookup[id] == nil {
			lookup[id] = make(map[string]string)
		}
		lookup[id][row.String("meta_key")] = row.String("meta_value")
	}
	return lookup
}
