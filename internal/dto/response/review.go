package response

import "amana-travel/internal/data/entity"

type ReviewReplyResponse struct {
	AdminName string `json:"admin_name"`
	Reply     string `json:"reply"`
	CreatedAt string `json:"created_at"`
}

type ReviewResponse struct {
	ID        string                `json:"id"`
	UserName  string                `json:"user_name"`
	Rating    int                   `json:"rating"`
	Comment   string                `json:"comment"`
	Replies   []ReviewReplyResponse `json:"replies,omitempty"`
	CreatedAt string                `json:"created_at"`
}

type RatingResponse struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        review.ID,
		UserName:  review.User.Name,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}

	for _, r := range review.AdminReplies {
		resp.Replies = append(resp.Replies, ReviewReplyResponse{
			AdminName: r.Admin.Name,
			Reply:     r.Reply,
			CreatedAt: r.CreatedAt,
		})
	}

	return resp
}
