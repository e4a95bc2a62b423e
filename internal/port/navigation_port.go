package port

import "context"

const ScreenHome = "Home"

type Navigator interface {
	NavigateTo(ctx context.Context, screen string, params map[string]any) error
}
