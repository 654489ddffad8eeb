package models

// Response schemas are enumerated per endpoint rather than assembled
// ad hoc, so the wire shape of every handler is visible in one place.

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// ToggleResponse is returned by like toggles on comments and posts.
type ToggleResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// BookmarkResponse is returned by the post bookmark toggle.
type BookmarkResponse struct {
	Bookmarked bool  `json:"bookmarked"`
	Bookmarks  int64 `json:"bookmarks"`
}

// CartResponse is the cart read shape with a derived subtotal.
type CartResponse struct {
	Cart          *Cart `json:"cart"`
	SubtotalCents int64 `json:"subtotal_cents"`
}

// ProductListResponse is a paginated catalog page.
type ProductListResponse struct {
	Products []*Product `json:"products"`
	Total    int64      `json:"total"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// PostListResponse is a paginated blog page.
type PostListResponse struct {
	Posts  []*BlogPost `json:"posts"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// DashboardResponse carries the admin back-office entity counts.
type DashboardResponse struct {
	Users          int64            `json:"users"`
	Products       int64            `json:"products"`
	Orders         int64            `json:"orders"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	BlogPosts      int64            `json:"blog_posts"`
	Comments       int64            `json:"comments"`
	Reviews        int64            `json:"reviews"`
}
