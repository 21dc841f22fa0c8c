package entities

// AdminList holds the scoreboard managers for one guild. A guild without a
// list and a guild with an empty list both grant nothing; the distinction only
// decides whether the next add performs a create or an update.
type AdminList struct {
	ID       int64   `db:"id"`
	GuildID  int64   `db:"guild_id"`
	AdminIDs []int64 `db:"admin_ids"`
}

// Contains reports whether playerID is on the list.
func (al *AdminList) Contains(playerID int64) bool {
	for _, id := range al.AdminIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// Add appends playerID to the list. Returns false if it was already present.
func (al *AdminList) Add(playerID int64) bool {
	if al.Contains(playerID) {
		return false
	}
	al.AdminIDs = append(al.AdminIDs, playerID)
	return true
}

// Remove deletes the single matching entry. Returns false if playerID was not
// present.
func (al *AdminList) Remove(playerID int64) bool {
	for i, id := range al.AdminIDs {
		if id == playerID {
			al.AdminIDs = append(al.AdminIDs[:i], al.AdminIDs[i+1:]...)
			return true
		}
	}
	return false
}
