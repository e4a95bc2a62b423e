package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/nikolayk812/foodcart/internal/port"
)

type Source int

const (
	Library Source = iota
	Camera
)

func (s Source) String() string {
	switch s {
	case Library:
		return "library"
	case Camera:
		return "camera"
	default:
		return "unknown"
	}
}

// Draft is a review being composed for one food.
type Draft struct {
	FoodID int
	Text   string
	Rating int
	Image  *string
}

func NewDraft(foodID int) *Draft {
	return &Draft{FoodID: foodID}
}

// Attach asks the media collaborator for an image. A declined permission
// returns an error wrapping domain.ErrPermissionDenied and leaves the draft
// as it was; a cancelled pick is not an error.
func (d *Draft) Attach(ctx context.Context, media port.MediaCapture, from Source) error {
	var (
		ref *string
		err error
	)

	switch from {
	case Library:
		ref, err = media.PickFromLibrary(ctx)
	case Camera:
		ref, err = media.CaptureFromCamera(ctx)
	default:
		return fmt.Errorf("media source[%d] is not valid", from)
	}

	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			return fmt.Errorf("%s: %w", from, err)
		}
		return fmt.Errorf("%s capture: %w", from, err)
	}

	if ref != nil {
		image := *ref
		d.Image = &image
	}
	return nil
}

func (d *Draft) ClearImage() {
	d.Image = nil
}

func (d *Draft) Review() domain.Review {
	r := domain.Review{
		FoodID: d.FoodID,
		Text:   d.Text,
		Rating: d.Rating,
	}
	if d.Image != nil {
		image := *d.Image
		r.Image = &image
	}
	return r
}
