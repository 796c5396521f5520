package response_models

// ImageRef is a single photo picked for a destination or a day card.
type ImageRef struct {
	ID              int64  `json:"id"`
	Src             string `json:"src"`
	SrcMedium       string `json:"srcMedium"`
	SrcSmall        string `json:"srcSmall"`
	Alt             string `json:"alt"`
	Photographer    string `json:"photographer"`
	PhotographerURL string `json:"photographerUrl"`
	AvgColor        string `json:"avgColor"`
}
