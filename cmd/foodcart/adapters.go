package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// logNavigator reports screen changes on the terminal.
type logNavigator struct {
	logger *slog.Logger
	out    io.Writer
}

func (n *logNavigator) NavigateTo(_ context.Context, screen string, params map[string]any) error {
	n.logger.Debug("navigate", slog.String("screen", screen), slog.Any("params", params))

	var b strings.Builder
	b.WriteString("-> " + screen)
	for _, k := range slices.Sorted(maps.Keys(params)) {
		fmt.Fprintf(&b, " %s=%v", k, params[k])
	}

	_, err := fmt.Fprintln(n.out, b.String())
	return err
}

// refMedia hands back an image reference given on the command line. There
// is no device to ask, so an empty ref behaves like a cancelled pick and
// permission is never denied.
type refMedia struct {
	ref string
}

func (m *refMedia) PickFromLibrary(context.Context) (*string, error) {
	return m.pick()
}

func (m *refMedia) CaptureFromCamera(context.Context) (*string, error) {
	return m.pick()
}

func (m *refMedia) pick() (*string, error) {
	if m.ref == "" {
		return nil, nil
	}
	ref := m.ref
	return &ref, nil
}
