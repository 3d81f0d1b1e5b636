package domain

// PaginationState is the persisted page of the story view.
type PaginationState struct {
	CurrentPage int `json:"current_page"`
}

// StoryPage is one page of stories plus its position in the list.
type StoryPage struct {
	Stories    []Story `json:"stories"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
	StartIndex int     `json:"start_idx"`
	EndIndex   int     `json:"end_idx"`
}

// TotalPages returns ceil(count/size), at least 1 so that page 1 always exists.
func TotalPages(count, size int) int {
	if size <= 0 {
		size = 1
	}
	n := (count + size - 1) / size
	if n < 1 {
		return 1
	}
	return n
}

// Paginate slices stories into the requested page. A page beyond the last
// one, or below 1, wraps to page 1.
func Paginate(stories []Story, page, size int) StoryPage {
	if size <= 0 {
		size = 1
	}
	total := TotalPages(len(stories), size)
	if page < 1 || page > total {
		page = 1
	}

	start := (page - 1) * size
	end := min(start+size, len(stories))
	start = min(start, end)

	return StoryPage{
		Stories:    stories[start:end],
		Page:       page,
		TotalPages: total,
		StartIndex: start,
		EndIndex:   end,
	}
}
