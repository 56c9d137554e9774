package dto

type DocumentListResponse struct {
	Count     int               `json:"count"`
	Documents []DocumentLinkDTO `json:"documents"`
}

type DocumentLinkDTO struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}
