package statusbar_test

import (
	"fmt"

	"github.com/riordanpawley/aurora/internal/types"
	"github.com/riordanpawley/aurora/internal/ui/statusbar"
	"github.com/riordanpawley/aurora/internal/ui/styles"
)

// Example demonstrates how to use the StatusBar
func Example() {
	style := styles.New()

	sb := statusbar.New(types.ModeNormal, 80, style).WithView(types.ViewSplit)

	// Render it (output will include ANSI codes for styling)
	rendered := sb.Render()

	fmt.Println(len(rendered) > 0)
	// Output: true
}

// ExampleGetHints shows how to get hints for different modes
func ExampleGetHints() {
	fmt.Println(statusbar.GetHints(types.ModeGoto, types.ViewKanban))
	// Output: g: top  e: end  h: first col  l: last col  t: today  Esc: cancel
}
