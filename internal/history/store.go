package history

import (
	"database/sql"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const defaultMaxExchanges = 50

// Exchange is one completed query/reply pair for a conversation.
type Exchange struct {
	Query     string
	Reply     string
	CreatedAt time.Time
}

// Store keeps a bounded per-conversation log of completed exchanges.
// Queued work is never persisted; only finished exchanges land here.
type Store struct {
	db           *sql.DB
	maxExchanges int
}

const schema = `
CREATE TABLE IF NOT EXISTS exchanges (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    conversation_id TEXT NOT NULL,
    query TEXT NOT NULL,
    reply TEXT NOT NULL,
    created_at DATETIME DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_exchanges_conversation ON exchanges(conversation_id, created_at DESC);
`

// Open creates or opens the exchange log database.
func Open(path string, maxExchanges int) (*Store, error) {
	if maxExchanges <= 0 {
		maxExchanges = defaultMaxExchanges
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, maxExchanges: maxExchanges}, nil
}

// Record appends an exchange and trims the conversation to the cap (FIFO).
func (s *Store) Record(conversationID, query, reply string) error {
	_, err := s.db.Exec(
		`INSERT INTO exchanges (conversation_id, query, reply) VALUES (?, ?, ?)`,
		conversationID, query, reply,
	)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		DELETE FROM exchanges
		WHERE conversation_id = ? AND id NOT IN (
			SELECT id FROM exchanges
			WHERE conversation_id = ?
			ORDER BY id DESC
			LIMIT ?
		)`, conversationID, conversationID, s.maxExchanges)

	return err
}

// Recent returns the conversation's exchanges, oldest first.
func (s *Store) Recent(conversationID string) ([]Exchange, error) {
	rows, err := s.db.Query(`
		SELECT query, reply, created_at
		FROM exchanges
		WHERE conversation_id = ?
		ORDER BY id ASC
		LIMIT ?`, conversationID, s.maxExchanges)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exchanges []Exchange
	for rows.Next() {
		var e Exchange
		var createdAt string
		if err := rows.Scan(&e.Query, &e.Reply, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		exchanges = append(exchanges, e)
	}

	return exchanges, rows.Err()
}

// Count returns the total number of logged exchanges.
func (s *Store) Count() (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM exchanges`).Scan(&n)
	return n, err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
