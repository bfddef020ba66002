package sqlite

import (
	"database/sql"
	"encoding/json"
	"log"

	"github.com/hoshinonyaruko/rusty-snake/session"
)

const createSessionsTableSQL = `
CREATE TABLE IF NOT EXISTS Sessions (
    GroupID TEXT PRIMARY KEY,
    State TEXT,
    LastRefresh INTEGER
);
`

func executeSQL(db *sql.DB, sqlStatement string) {
	_, err := db.Exec(sqlStatement)
	if err != nil {
		log.Fatalf("Error executing SQL statement: %s\n%s", sqlStatement, err)
	}
}

func InitializeDatabase(db *sql.DB) {
	executeSQL(db, createSessionsTableSQL)
}

// SaveSession 把整个会话状态序列化成JSON后落库
func SaveSession(db *sql.DB, groupID string, state session.State, lastRefresh int64) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = db.Exec("INSERT OR REPLACE INTO Sessions (GroupID, State, LastRefresh) VALUES (?, ?, ?)",
		groupID, string(data), lastRefresh)
	return err
}

// LoadSession 按GroupID取回会话状态，没有记录时返回sql.ErrNoRows
func LoadSession(db *sql.DB, groupID string) (session.State, int64, error) {
	var state session.State
	var data string
	var lastRefresh int64

	err := db.QueryRow("SELECT State, LastRefresh FROM Sessions WHERE GroupID = ?", groupID).Scan(&data, &lastRefresh)
	if err != nil {
		return state, 0, err
	}
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return state, 0, err
	}
	return state, lastRefresh, nil
}

// DeleteSession 删除一个群的会话
func DeleteSession(db *sql.DB, groupID string) error {
	_, err := db.Exec("DELETE FROM Sessions WHERE GroupID = ?", groupID)
	return err
}
