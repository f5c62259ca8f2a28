package subtitle

// represents single subtitle entry, times are in seconds
type Record struct {
	ID    int
	Start float64
	End   float64
	Text  string
}

// ordered subtitle records, order is the association to timeline position
type Sequence []Record

// returns the first record carrying id, first match wins on duplicates
func (s Sequence) Find(id int) (Record, bool) {
	for _, rec := range s {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}
