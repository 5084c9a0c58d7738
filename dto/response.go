package dto

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"post not found"`
}

// MessageResponseDTO는 단순 메시지 응답 형식을 통일하기 위한 DTO이다.
type MessageResponseDTO struct {
	Message string `json:"message" example:"view count incremented successfully"`
}

// StatsDTO 는 통계 저장소의 카운터 값이다.
type StatsDTO struct {
	StatsID   string `json:"stats_id"`
	ViewCount int64  `json:"view_count"`
	Likes     int64  `json:"likes"`
	Comments  int64  `json:"comments"`
}

// ReloadResponseDTO 는 강제 재로딩 결과다.
type ReloadResponseDTO struct {
	Posts int `json:"posts" example:"4"`
}
