package models

// ItemSequence is one nomenclature counter, unique per item kind. The
// counter is scoped to the prefix it was seeded under; when a kind's
// resolved prefix changes the allocator reseeds it instead of continuing
// the old sequence.
type ItemSequence struct {
	ItemKind   string `gorm:"column:item_kind;primaryKey"`
	Prefix     string `gorm:"column:prefix"`
	NextNumber int    `gorm:"column:next_number"`
}

// TableName specifies the table name for GORM
func (ItemSequence) TableName() string {
	return "item_sequences"
}
