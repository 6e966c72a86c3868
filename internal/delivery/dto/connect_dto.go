package dto

// ConnectionResponse carries everything a client needs to join a voice room.
type ConnectionResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
	Room  string `json:"room"`
}
