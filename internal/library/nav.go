package library

// Link is a labelled reference to another page.
type Link struct {
	Label  string
	Target string
}

// Navigate returns the neighbours of the item at index in an ordered
// list of siblings. Either result is nil at the ends of the list; there
// is no wraparound and the list is never re-sorted.
func Navigate(siblings []Link, index int) (prev, next *Link) {
	if index < 0 || index >= len(siblings) {
		return nil, nil
	}
	if index > 0 {
		p := siblings[index-1]
		prev = &p
	}
	if index < len(siblings)-1 {
		n := siblings[index+1]
		next = &n
	}
	return prev, next
}
