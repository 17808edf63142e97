package employee

// Offset converts a 1-indexed page to a row offset.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// TotalPages computes the page count reported to clients. The formula is
// floor(total/pageSize)+1, which yields one trailing empty page when total
// is an exact multiple of pageSize. Existing clients page until they get an
// empty response, so the extra page is part of the contract.
func TotalPages(totalCount int64, pageSize int) int64 {
	return totalCount/int64(pageSize) + 1
}
