package persistence

// Scannable is an interface for something that can scan into a
// destination (sql.Row or sql.Rows)
type Scannable interface {
	Scan(dest ...interface{}) error
}
