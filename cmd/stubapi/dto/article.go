package dto

// ArticleDTO 는 GET /articles/all/ 응답 배열의 한 항목이다.
// content 또는 pdf_file 중 하나만 있는 기사도 있다.
type ArticleDTO struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Content       *string `json:"content,omitempty"`
	PDFFile       *string `json:"pdf_file,omitempty"`
	Author        *string `json:"author,omitempty"`
	PublishedDate string  `json:"published_date" example:"2025-02-10"`
	ViewCount     int     `json:"view_count"`
	Category      string  `json:"category"`
}
