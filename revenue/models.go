package revenue

// Entry mirrors one row of the revenue table: a month label and the
// revenue booked in it, in whole dollars.
type Entry struct {
	Month   string
	Revenue int64
}
