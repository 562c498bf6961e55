package domain

// Book is a catalog entry. AvailableCopies stays within [0, TotalCopies];
// the repository's availability update refuses any change that would break
// the bound.
type Book struct {
	ID              int32  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	TotalCopies     int32  `json:"total_copies"`
	AvailableCopies int32  `json:"available_copies"`
}
