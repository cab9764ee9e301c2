package command

import (
	"github.com/akarpov/online-store/internal/review/domain"
	userdomain "github.com/akarpov/online-store/internal/user/domain"
)

// DeleteReviewCommand represents a review removal
type DeleteReviewCommand struct {
	Actor    *userdomain.User
	ReviewID uint
}

// DeleteReviewHandler handles review removal. The author may remove their own
// review; admins may remove any.
type DeleteReviewHandler struct {
	reviews domain.ReviewRepository
}

func NewDeleteReviewHandler(reviews domain.ReviewRepository) *DeleteReviewHandler {
	return &DeleteReviewHandler{reviews: reviews}
}

func (h *DeleteReviewHandler) Handle(cmd DeleteReviewCommand) error {
	review, err := h.reviews.FindByID(cmd.ReviewID)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	if review.UserID != cmd.Actor.ID && !cmd.Actor.IsAdmin() {
		return domain.ErrNotAuthor
	}

	return h.reviews.Delete(review.ID)
}
