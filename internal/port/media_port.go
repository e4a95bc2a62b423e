package port

import "context"

// MediaCapture hands back an image reference, or nil when the user cancels.
// A declined permission is reported as domain.ErrPermissionDenied.
type MediaCapture interface {
	PickFromLibrary(ctx context.Context) (*string, error)
	CaptureFromCamera(ctx context.Context) (*string, error)
}
