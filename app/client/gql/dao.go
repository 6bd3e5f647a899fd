package gql

// PlaybackAccessToken is the signed credential pair usher expects for a channel
type PlaybackAccessToken struct {
	Value     string `json:"value"`
	Signature string `json:"signature"`
}

// playbackAccessTokenResponse represents the GraphQL response envelope
type playbackAccessTokenResponse struct {
	Data struct {
		StreamPlaybackAccessToken *PlaybackAccessToken `json:"streamPlaybackAccessToken"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}
