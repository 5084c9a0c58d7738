package dto

// SearchResultDTO is one ranked post.
type SearchResultDTO struct {
	Post          PostSummaryDTO `json:"post"`
	Score         int            `json:"score" example:"18"`
	MatchedFields []string       `json:"matched_fields" example:"title,tags"`
}

// SearchResponseDTO carries the results along with the search state, so a
// client can tell "not searched" (idle) from "no results for query".
type SearchResponseDTO struct {
	Query   string            `json:"query" example:"react hooks"`
	State   string            `json:"state" example:"results" enums:"idle,no_results,results"`
	Total   int               `json:"total"`
	Results []SearchResultDTO `json:"results"`
}
