package models

// Course is an enrolled course. Credits weight its grades in the final average.
type Course struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Teacher string `db:"teacher" json:"teacher"`
	Credits int    `db:"credits" json:"credits"`
}
