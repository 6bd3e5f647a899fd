package twitch

// Video is one record of the Helix videos endpoint
type Video struct {
	ID           string `json:"id"`
	ThumbnailURL string `json:"thumbnail_url"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	UserID       string `json:"user_id"`
}

// VideosResponse represents the response from the videos endpoint
type VideosResponse struct {
	Data []Video `json:"data"`
}

// authResponse represents the response from the OAuth token endpoint
type authResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}
