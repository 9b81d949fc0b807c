package models

// WeetStats carries the aggregate relationship counts for a weet.
type WeetStats struct {
	Reweets   int `json:"reweets"`
	Favorites int `json:"favorites"`
	Tabs      int `json:"tabs"`
}

// WeetChecks records which reversible relationships the requesting user
// currently holds against a weet.
type WeetChecks struct {
	Reweeted  bool `json:"reweeted"`
	Favorited bool `json:"favorited"`
	Tabbed    bool `json:"tabbed"`
}

// Weet is a single post as returned by the backend. Date and Time are
// display strings formatted server-side.
type Weet struct {
	ID     string     `json:"id"`
	Author string     `json:"author"`
	Weet   string     `json:"weet"`
	Date   string     `json:"date"`
	Time   string     `json:"time"`
	Stats  WeetStats  `json:"stats"`
	Checks WeetChecks `json:"checks"`
}
