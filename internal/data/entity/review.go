package entity

type ReviewUser struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

type ReviewAdmin struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type AdminReply struct {
	Admin     ReviewAdmin `json:"adminId"`
	Reply     string      `json:"reply"`
	CreatedAt string      `json:"createdAt"`
}

type Review struct {
	ID           string       `json:"_id"`
	User         ReviewUser   `json:"userId"`
	EntityID     string       `json:"entityId"`
	EntityType   string       `json:"entityType"`
	Rating       int          `json:"rating"`
	Comment      string       `json:"comment"`
	AdminReplies []AdminReply `json:"adminReplies,omitempty"`
	CreatedAt    string       `json:"createdAt"`
}

type Rating struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}
