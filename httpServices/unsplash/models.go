package unsplash

// Image is one search result with the attribution Unsplash requires.
type Image struct {
	URL              string `json:"url"`
	Alt              string `json:"alt"`
	Photographer     string `json:"photographer"`
	PhotographerURL  string `json:"photographer_url"`
	DownloadLocation string `json:"download_location"`
}

type searchResponse struct {
	Results []photo `json:"results"`
}

type photo struct {
	AltDescription string `json:"alt_description"`
	URLs           struct {
		Regular string `json:"regular"`
		Small   string `json:"small"`
	} `json:"urls"`
	User struct {
		Name  string `json:"name"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
	Links struct {
		DownloadLocation string `json:"download_location"`
	} `json:"links"`
}
