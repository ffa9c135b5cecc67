package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/terra/internal/engine/input"
)

var (
	flagScreenWidth  int
	flagScreenHeight int
)

var bindingsCmd = &cobra.Command{
	Use:   "bindings [layout.yaml]",
	Short: "Show a screen joystick layout and its bindings",
	Long: `Validates a screen joystick layout and prints where each element lands
on the screen and which keys or mouse buttons it feeds. Without a file the
built-in layout is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout := input.DefaultLayout()
		if len(args) == 1 {
			var err error
			if layout, err = input.LoadLayout(args[0]); err != nil {
				return err
			}
		}
		return printBindings(cmd.OutOrStdout(), layout, flagScreenWidth, flagScreenHeight)
	},
}

func init() {
	bindingsCmd.Flags().IntVar(&flagScreenWidth, "width", 1280, "Screen width for element placement")
	bindingsCmd.Flags().IntVar(&flagScreenHeight, "height", 720, "Screen height for element placement")
}

// printBindings resolves the layout the way the viewer does, without a window.
func printBindings(w io.Writer, layout *input.Layout, screenW, screenH int) error {
	in := input.New(nil)
	if _, err := in.AddScreenJoystick(layout); err != nil {
		return err
	}
	sj := in.ScreenJoysticks()[0]

	fmt.Fprintf(w, "Layout: %s (%d elements, %dx%d screen)\n", sj.Name, len(sj.Elements), screenW, screenH)
	fmt.Fprintf(w, "  %-10s %-7s %-22s %s\n", "Name", "Kind", "Rect", "Binding")
	for _, e := range sj.Elements {
		fmt.Fprintf(w, "  %-10s %-7s %-22s %s\n", e.Name, e.Kind, e.Rect(screenW, screenH), bindingString(e))
	}
	return nil
}

func bindingString(e *input.Element) string {
	var parts []string
	for _, k := range e.Keys {
		parts = append(parts, keyName(k))
	}
	switch e.MouseButton {
	case input.MouseButtonLeft:
		parts = append(parts, "mouse left")
	case input.MouseButtonMiddle:
		parts = append(parts, "mouse middle")
	case input.MouseButtonRight:
		parts = append(parts, "mouse right")
	case input.MouseButtonX1:
		parts = append(parts, "mouse x1")
	case input.MouseButtonX2:
		parts = append(parts, "mouse x2")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func keyName(k sdl.Keycode) string {
	if k > ' ' && k < 0x7f {
		return string(rune(k))
	}
	return input.KeyName(k)
}
